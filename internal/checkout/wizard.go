package checkout

import "errors"

// Step is a stage of the checkout wizard.
type Step int

const (
	StepCollectingAddress Step = iota
	StepVerifyingIdentity
	StepScheduling
	StepPaying
	StepSubmitted
)

var stepNames = [...]string{
	StepCollectingAddress: "collecting-address",
	StepVerifyingIdentity: "verifying-identity",
	StepScheduling:        "scheduling",
	StepPaying:            "paying",
	StepSubmitted:         "submitted",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

var stepValidators = map[Step]func(Form) error{
	StepCollectingAddress: validateAddress,
	StepVerifyingIdentity: validateIdentity,
	StepScheduling:        validateSchedule,
	StepPaying:            validatePayment,
}

// ErrWizardComplete is returned when advancing past the last step.
var ErrWizardComplete = errors.New("checkout already submitted")

// Wizard is the linear checkout flow. Moving forward requires the current
// step to validate; moving back is always allowed.
type Wizard struct {
	step Step
	form Form
}

// NewWizard starts a wizard at the address step.
func NewWizard(form Form) *Wizard {
	return &Wizard{step: StepCollectingAddress, form: form}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Form returns the current form state.
func (w *Wizard) Form() Form {
	return w.form
}

// Update replaces the form state without moving.
func (w *Wizard) Update(form Form) {
	w.form = form
}

// Next validates the current step and advances on success.
func (w *Wizard) Next() error {
	if w.step == StepSubmitted {
		return ErrWizardComplete
	}
	if err := stepValidators[w.step](w.form); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back moves to the previous step. It stays put on the first step and once
// the order has been submitted.
func (w *Wizard) Back() {
	if w.step > StepCollectingAddress && w.step < StepSubmitted {
		w.step--
	}
}

// ValidateAll walks the wizard through every step up to payment and returns
// the first failing step's errors.
func ValidateAll(form Form) error {
	w := NewWizard(form)
	for w.Step() <= StepPaying {
		if err := w.Next(); err != nil {
			return err
		}
	}
	return nil
}
