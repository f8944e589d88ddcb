package wizard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cucumber/godog"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
)

type wizardTestContext struct {
	clk    *clock.Mock
	wizard *Wizard
	upload upload.Result
	err    error
}

func (c *wizardTestContext) reset() {
	c.clk = clock.NewMock()
	c.wizard = New("feature", c.clk, domain.DefaultHoldDuration, Dependencies{
		Availability: seededAvailability(),
		Pricing:      fakePricing{},
		Uploads:      upload.NewValidator(0, nil),
		HoldRegistry: newFakeRegistry(),
	})
	c.upload = upload.Result{}
	c.err = nil
}

func (c *wizardTestContext) aNewBookingSession() error {
	return nil
}

func (c *wizardTestContext) theWizardIsOnTheBookingSummary() error {
	ctx := context.Background()
	if _, err := c.wizard.SelectLevel(ctx, domain.LevelC1); err != nil {
		return err
	}
	if _, err := c.wizard.SelectExamOption(ctx, domain.ExamBoth); err != nil {
		return err
	}
	if _, err := c.wizard.SelectDate(ctx, examDay); err != nil {
		return err
	}
	_, err := c.wizard.SelectTime(ctx, "09:00")
	return err
}

func (c *wizardTestContext) iSelectLevel(level string) error {
	l, err := domain.ParseLevel(level)
	if err != nil {
		return err
	}
	_, c.err = c.wizard.SelectLevel(context.Background(), l)
	return nil
}

func (c *wizardTestContext) iSelectExamOption(option string) error {
	o, err := domain.ParseExamOption(option)
	if err != nil {
		return err
	}
	_, c.err = c.wizard.SelectExamOption(context.Background(), o)
	return nil
}

func (c *wizardTestContext) iSelectDate(date string) error {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return err
	}
	_, c.err = c.wizard.SelectDate(context.Background(), d)
	return nil
}

func (c *wizardTestContext) iSelectCurrency(currency string) error {
	cur, err := domain.ParseCurrency(currency)
	if err != nil {
		return err
	}
	_, c.err = c.wizard.SelectCurrency(cur)
	return nil
}

func (c *wizardTestContext) iUploadOfType(name, contentType string) error {
	content := []byte("plain text notes")
	if contentType == "application/pdf" {
		content = []byte("%PDF-1.4\n%certificate")
	}
	c.upload, _, c.err = c.wizard.UploadPrerequisite(context.Background(), upload.File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	})
	return nil
}

func (c *wizardTestContext) iProceedToPayment() error {
	_, c.err = c.wizard.ProceedToPayment(context.Background())
	return c.err
}

func (c *wizardTestContext) secondsPass(seconds int) error {
	c.clk.Add(time.Duration(seconds) * time.Second)
	return nil
}

func (c *wizardTestContext) theCurrentStepIs(step int) error {
	if got := c.wizard.Snapshot().Step; int(got) != step {
		return fmt.Errorf("expected step %d, got %d (%s)", step, got, got)
	}
	return nil
}

func (c *wizardTestContext) thePrerequisiteIsUploaded() error {
	if !c.wizard.Snapshot().State.PrerequisiteUploaded {
		return errors.New("expected prerequisite to be uploaded")
	}
	return nil
}

func (c *wizardTestContext) thePrerequisiteIsNotUploaded() error {
	if c.wizard.Snapshot().State.PrerequisiteUploaded {
		return errors.New("expected prerequisite not to be uploaded")
	}
	return nil
}

func (c *wizardTestContext) theUploadIsAccepted() error {
	if c.err != nil {
		return c.err
	}
	if !c.upload.Accepted {
		return fmt.Errorf("expected upload to be accepted, got %q", c.upload.Reason)
	}
	return nil
}

func (c *wizardTestContext) theUploadIsRejectedWith(reason string) error {
	if c.upload.Accepted {
		return errors.New("expected upload to be rejected")
	}
	if c.upload.Reason != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, c.upload.Reason)
	}
	return nil
}

func (c *wizardTestContext) noExamOptionIsSelected() error {
	if o := c.wizard.Snapshot().State.ExamOption; o != "" {
		return fmt.Errorf("expected no exam option, got %q", o)
	}
	return nil
}

func (c *wizardTestContext) noDateIsSelected() error {
	s := c.wizard.Snapshot().State
	if s.HasDate() || s.HasTime() {
		return fmt.Errorf("expected no date and time, got %s %s", s.Date.Format(domain.DateFormat), s.Time)
	}
	return nil
}

func (c *wizardTestContext) theRequestIsRejectedAs(kind string) error {
	expected := map[string]error{
		"step locked":      ErrStepLocked,
		"date unavailable": ErrDateUnavailable,
		"slot unavailable": ErrSlotUnavailable,
	}[kind]
	if expected == nil {
		return fmt.Errorf("unknown rejection %q", kind)
	}
	if !errors.Is(c.err, expected) {
		return fmt.Errorf("expected %v, got %v", expected, c.err)
	}
	return nil
}

func (c *wizardTestContext) theQuotedPriceIs(price string) error {
	want, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return err
	}
	got, _, err := c.wizard.Quote(context.Background())
	if err != nil {
		return err
	}
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected price %.2f, got %.2f", want, got)
	}
	return nil
}

// theHoldIs колбэк истечения выполняется в отдельной горутине, поэтому ждем
func (c *wizardTestContext) theHoldIs(state string) error {
	return c.eventually(func() bool { return string(c.wizard.Snapshot().HoldState) == state },
		"hold state "+state)
}

func (c *wizardTestContext) theNoticeIs(notice string) error {
	return c.eventually(func() bool { return c.wizard.Snapshot().Notice == notice }, "notice "+notice)
}

func (c *wizardTestContext) eventually(cond func() bool, what string) error {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for %s", what)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &wizardTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.wizard.Close(ctx)
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new booking session$`, tc.aNewBookingSession)
	ctx.Step(`^the wizard is on the booking summary$`, tc.theWizardIsOnTheBookingSummary)

	// When steps
	ctx.Step(`^I select level "([^"]*)"$`, tc.iSelectLevel)
	ctx.Step(`^I select exam option "([^"]*)"$`, tc.iSelectExamOption)
	ctx.Step(`^I select date "([^"]*)"$`, tc.iSelectDate)
	ctx.Step(`^I select currency "([^"]*)"$`, tc.iSelectCurrency)
	ctx.Step(`^I upload "([^"]*)" of type "([^"]*)"$`, tc.iUploadOfType)
	ctx.Step(`^I proceed to payment$`, tc.iProceedToPayment)
	ctx.Step(`^(\d+) seconds pass$`, tc.secondsPass)

	// Then steps
	ctx.Step(`^the current step is (\d+)$`, tc.theCurrentStepIs)
	ctx.Step(`^the prerequisite is uploaded$`, tc.thePrerequisiteIsUploaded)
	ctx.Step(`^the prerequisite is not uploaded$`, tc.thePrerequisiteIsNotUploaded)
	ctx.Step(`^the upload is accepted$`, tc.theUploadIsAccepted)
	ctx.Step(`^the upload is rejected with "([^"]*)"$`, tc.theUploadIsRejectedWith)
	ctx.Step(`^no exam option is selected$`, tc.noExamOptionIsSelected)
	ctx.Step(`^no date is selected$`, tc.noDateIsSelected)
	ctx.Step(`^the request is rejected as "([^"]*)"$`, tc.theRequestIsRejectedAs)
	ctx.Step(`^the quoted price is ([\d.]+)$`, tc.theQuotedPriceIs)
	ctx.Step(`^the hold is "([^"]*)"$`, tc.theHoldIs)
	ctx.Step(`^the notice is "([^"]*)"$`, tc.theNoticeIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/wizard.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
