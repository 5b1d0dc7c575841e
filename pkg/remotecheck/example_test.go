package remotecheck_test

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/remotecheck"
)

func ExampleUnique() {
	reserved := remotecheck.CheckerFunc(func(ctx context.Context, value string) (bool, error) {
		return value == "admin", nil
	})

	username := formkit.NewField("").WithAsync(remotecheck.Unique(reserved))
	if err := username.SetValue("admin"); err != nil {
		fmt.Println(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, _ := formkit.Wait(ctx, username)
	fmt.Println(status)
	fmt.Println(username.Errors().Keys())
	// Output:
	// invalid
	// [unique]
}
