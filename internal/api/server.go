package api

import (
	"github.com/smomoh/flagquiz/internal/countries"
	"github.com/smomoh/flagquiz/internal/mailer"
	"github.com/smomoh/flagquiz/internal/services"
	"github.com/smomoh/flagquiz/internal/worker"
)

// Server bundles the dependencies of the HTTP handlers.
type Server struct {
	ProfileService services.ProfileService
	StatsService   services.StatsService
	QuizService    *services.QuizService
	AnswerService  services.AnswerService
	Provider       *countries.Provider
	MailPool       *worker.Pool
	Mailer         mailer.Sender
	MailFrom       string
}
