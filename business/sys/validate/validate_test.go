package validate_test

import (
	"testing"

	"github.com/ardanlabs/powledger/business/sys/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type submit struct {
	Transactions []string `json:"transactions" validate:"required,min=1,dive,required"`
}

func TestCheck(t *testing.T) {
	t.Log("Given the need to validate request models.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the model is valid.", testID)
		{
			if err := validate.Check(submit{Transactions: []string{"a"}}); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the model has no transactions.", testID)
		{
			err := validate.Check(submit{})
			if !validate.IsFieldErrors(err) {
				t.Fatalf("\t%s\tTest %d:\tShould get field errors: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get field errors.", success, testID)

			fields := validate.GetFieldErrors(err).Fields()
			if _, exists := fields["transactions"]; !exists {
				t.Fatalf("\t%s\tTest %d:\tShould name the json field: %v", failed, testID, fields)
			}
			t.Logf("\t%s\tTest %d:\tShould name the json field.", success, testID)
		}
	}
}
