package classlist_test

import (
	"fmt"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/classlist"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func ExampleString() {
	email := formkit.NewField("", rules.Required(), rules.Email())
	_ = email.SetValue("not-an-email")
	email.MarkTouched()

	fmt.Println(classlist.String(email))
	// Output: fk-invalid fk-dirty fk-touched
}
