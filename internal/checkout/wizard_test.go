package checkout

import (
	"testing"

	"rentlify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		PaymentMethod: model.PaymentCard,
	}
}

func TestWizard_HappyPath(t *testing.T) {
	w := NewWizard(validForm())

	expected := []Step{StepVerifyingIdentity, StepScheduling, StepPaying, StepSubmitted}
	for _, step := range expected {
		require.NoError(t, w.Next())
		assert.Equal(t, step, w.Step())
	}

	assert.ErrorIs(t, w.Next(), ErrWizardComplete)
	w.Back()
	assert.Equal(t, StepSubmitted, w.Step())
}

func TestWizard_StepValidation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(f *Form)
		failingStep   Step
		expectedField string
	}{
		{name: "Missing name", mutate: func(f *Form) { f.Name = "  " }, failingStep: StepCollectingAddress, expectedField: "name"},
		{name: "Missing address", mutate: func(f *Form) { f.Address = "" }, failingStep: StepCollectingAddress, expectedField: "address"},
		{name: "Missing city", mutate: func(f *Form) { f.City = "" }, failingStep: StepCollectingAddress, expectedField: "city"},
		{name: "Missing state", mutate: func(f *Form) { f.State = "" }, failingStep: StepCollectingAddress, expectedField: "state"},
		{name: "Short pincode", mutate: func(f *Form) { f.Pincode = "56001" }, failingStep: StepCollectingAddress, expectedField: "pincode"},
		{name: "Non-numeric pincode", mutate: func(f *Form) { f.Pincode = "56000A" }, failingStep: StepCollectingAddress, expectedField: "pincode"},
		{name: "Short phone", mutate: func(f *Form) { f.Phone = "98765" }, failingStep: StepVerifyingIdentity, expectedField: "phone"},
		{name: "Long phone", mutate: func(f *Form) { f.Phone = "98765432101" }, failingStep: StepVerifyingIdentity, expectedField: "phone"},
		{name: "Bad email", mutate: func(f *Form) { f.Email = "asha.example.com" }, failingStep: StepVerifyingIdentity, expectedField: "email"},
		{name: "Negative duration", mutate: func(f *Form) { f.DurationMonths = -1 }, failingStep: StepScheduling, expectedField: "durationMonths"},
		{name: "Unknown payment", mutate: func(f *Form) { f.PaymentMethod = "bitcoin" }, failingStep: StepPaying, expectedField: "paymentMethod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			w := NewWizard(form)

			var err error
			for err == nil && w.Step() != StepSubmitted {
				err = w.Next()
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.failingStep, vErr.Step)
			assert.Equal(t, tt.failingStep, w.Step(), "wizard must not advance past an invalid step")
			assert.Contains(t, vErr.Fields, tt.expectedField)
		})
	}
}

func TestWizard_BackIsUnrestricted(t *testing.T) {
	w := NewWizard(validForm())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StepScheduling, w.Step())

	// clearing fields does not block going back
	w.Update(Form{})
	w.Back()
	assert.Equal(t, StepVerifyingIdentity, w.Step())
	w.Back()
	w.Back()
	assert.Equal(t, StepCollectingAddress, w.Step())

	err := w.Next()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 5)
}

func TestValidateAll(t *testing.T) {
	assert.NoError(t, ValidateAll(validForm()))

	form := validForm()
	form.Phone = "123"
	err := ValidateAll(form)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StepVerifyingIdentity, vErr.Step)
	assert.Equal(t, "verifying-identity: phone: must be exactly 10 digits", err.Error())
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "collecting-address", StepCollectingAddress.String())
	assert.Equal(t, "submitted", StepSubmitted.String())
	assert.Equal(t, "unknown", Step(42).String())
}
