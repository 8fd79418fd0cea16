package worker

import (
	"context"
	"fmt"

	"github.com/smomoh/flagquiz/internal/countries"
	"github.com/smomoh/flagquiz/internal/logger"
	"github.com/smomoh/flagquiz/internal/mailer"
)

// PreloadCountriesJob warms the country cache at startup so the first quiz
// start does not pay for the fetch. Failure is only logged; the provider
// retries lazily on the next use.
type PreloadCountriesJob struct {
	Provider *countries.Provider
}

func (j *PreloadCountriesJob) Name() string { return "preload_countries" }

func (j *PreloadCountriesJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	all := j.Provider.All(ctx)
	if len(all) == 0 {
		log.Warn("country preload returned no countries")
		return nil
	}
	log.Info("preloaded %d countries", len(all))
	return nil
}

// WelcomeEmailJob sends the first-sign-in welcome message.
type WelcomeEmailJob struct {
	Sender   mailer.Sender
	From     string
	To       string
	Username string
}

func (j *WelcomeEmailJob) Name() string { return "welcome_email" }

func (j *WelcomeEmailJob) Run(ctx context.Context) error {
	if j.To == "" {
		logger.FromContext(ctx).Debug("profile %s has no email, skipping welcome mail", j.Username)
		return nil
	}
	return j.Sender.Send(ctx, mailer.Message{
		From:    j.From,
		To:      j.To,
		Subject: "Welcome to FlagQuiz",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWelcome to FlagQuiz! Pick a continent and start learning flags.\n",
			j.Username,
		),
	})
}
