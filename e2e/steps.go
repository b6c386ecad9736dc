//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"examreg/internal/payment/signature"
)

func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the registration service is running$`, tc.serviceIsRunning)

	ctx.Step(`^a registrant "([^"]*)" with email "([^"]*)"$`, tc.registrant)
	ctx.Step(`^the registrant chose an? "([^"]*)" exam$`, tc.examType)
	ctx.Step(`^a paid order "([^"]*)" with payment "([^"]*)"$`, tc.paidOrder)

	ctx.Step(`^I submit the payment callback with a valid signature$`, tc.submitValidCallback)
	ctx.Step(`^I submit the payment callback with signature "([^"]*)"$`, tc.submitCallbackWithSignature)
	ctx.Step(`^I submit the same payment callback again$`, tc.resubmit)
	ctx.Step(`^I register without payment$`, tc.registerWithoutPayment)
	ctx.Step(`^I POST to "([^"]*)" with body '([^']*)'$`, tc.postRaw)
	ctx.Step(`^I GET "([^"]*)"$`, tc.GET)

	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
}

func (tc *TestContext) serviceIsRunning(context.Context) error {
	if err := tc.GET("/health/live"); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(context.Background(), 200)
}

func (tc *TestContext) registrant(_ context.Context, name, email string) error {
	tc.Submission["fullName"] = name
	tc.Submission["email"] = email
	tc.Submission["mobileNumber"] = "9876543210"
	return nil
}

func (tc *TestContext) examType(_ context.Context, kind string) error {
	tc.Submission["examType"] = kind
	if kind == "offline" {
		tc.Submission["country"] = "India"
		tc.Submission["state"] = "Maharashtra"
		tc.Submission["city"] = "Pune"
	}
	return nil
}

func (tc *TestContext) paidOrder(_ context.Context, orderID, paymentID string) error {
	tc.OrderID = orderID
	tc.PaymentID = paymentID
	return nil
}

func (tc *TestContext) submitValidCallback(ctx context.Context) error {
	return tc.submitCallbackWithSignature(ctx, signature.Sign(tc.OrderID, tc.PaymentID, tc.Secret))
}

func (tc *TestContext) submitCallbackWithSignature(_ context.Context, sig string) error {
	tc.LastRequest = map[string]any{
		"razorpay_order_id":   tc.OrderID,
		"razorpay_payment_id": tc.PaymentID,
		"razorpay_signature":  sig,
		"submissionData":      tc.Submission,
	}
	return tc.POST("/verify-payment", tc.LastRequest)
}

func (tc *TestContext) resubmit(context.Context) error {
	if tc.LastRequest == nil {
		return fmt.Errorf("no callback submitted yet")
	}
	return tc.POST("/verify-payment", tc.LastRequest)
}

func (tc *TestContext) registerWithoutPayment(context.Context) error {
	return tc.POST("/register-exam", map[string]any{"submissionData": tc.Submission})
}

func (tc *TestContext) postRaw(_ context.Context, path, body string) error {
	return tc.POSTRaw(path, body)
}

func (tc *TestContext) responseStatusShouldBe(_ context.Context, expected int) error {
	if tc.LastResponse == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.LastResponse.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.LastResponse.StatusCode, tc.LastResponseBody)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(_ context.Context, field, expected string) error {
	got, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, got)
	}
	return nil
}

func (tc *TestContext) responseShouldContain(_ context.Context, text string) error {
	if !strings.Contains(string(tc.LastResponseBody), text) {
		return fmt.Errorf("response does not contain %q: %s", text, tc.LastResponseBody)
	}
	return nil
}
