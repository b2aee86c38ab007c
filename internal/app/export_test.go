package app

import (
	"context"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
)

func SetNewAdvisor(f func() advisor.Advisor) (restore func()) {
	prev := newAdvisor
	newAdvisor = func(context.Context, advisor.Config) (advisor.Advisor, error) {
		return f(), nil
	}

	return func() { newAdvisor = prev }
}
