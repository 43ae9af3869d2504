package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/storeqa/storefront-suite/internal/gorest"
)

// LifecycleStep is one call of the users lifecycle and the status it must return
type LifecycleStep struct {
	Name     string
	Expected int
	Actual   int
}

// RunUserLifecycle creates a user, reads it, activates it, deletes it and
// confirms it is gone. Every step is reported to out; the first unexpected
// status stops the run.
func RunUserLifecycle(ctx context.Context, client *gorest.Client, out io.Writer) ([]LifecycleStep, error) {
	var steps []LifecycleStep
	check := func(name string, expected int, resp *gorest.Response, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		step := LifecycleStep{Name: name, Expected: expected, Actual: resp.StatusCode}
		steps = append(steps, step)
		fmt.Fprintf(out, "%-8s %d (want %d)\n", step.Name, step.Actual, step.Expected)
		if step.Actual != step.Expected {
			return fmt.Errorf("%s returned %d, want %d: %s", name, resp.StatusCode, expected, resp.Body)
		}
		return nil
	}

	resp, err := client.CreateUser(ctx, gorest.User{
		Name:   "Storefront QA",
		Email:  gorest.UniqueEmail("lifecycle"),
		Gender: "male",
		Status: "inactive",
	})
	if err := check("create", http.StatusCreated, resp, err); err != nil {
		return steps, err
	}
	var created gorest.User
	if err := resp.Decode(&created); err != nil {
		return steps, err
	}
	if created.ID <= 0 {
		return steps, fmt.Errorf("create returned id %d, want a positive id: %s", created.ID, resp.Body)
	}

	resp, err = client.GetUser(ctx, created.ID)
	if err := check("get", http.StatusOK, resp, err); err != nil {
		return steps, err
	}

	resp, err = client.UpdateUser(ctx, created.ID, map[string]string{"status": "active"})
	if err := check("update", http.StatusOK, resp, err); err != nil {
		return steps, err
	}
	var updated gorest.User
	if err := resp.Decode(&updated); err != nil {
		return steps, err
	}
	if updated.Status != "active" {
		return steps, fmt.Errorf("update left status %q", updated.Status)
	}

	resp, err = client.DeleteUser(ctx, created.ID)
	if err := check("delete", http.StatusNoContent, resp, err); err != nil {
		return steps, err
	}

	resp, err = client.GetUser(ctx, created.ID)
	if err := check("recheck", http.StatusNotFound, resp, err); err != nil {
		return steps, err
	}

	return steps, nil
}
