package commands

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, int64, Command) error

type actionFactory struct {
	byAction map[string]actionFunc
}

func newActionFactory(onStatus, onPostpone, onCancel actionFunc) *actionFactory {
	return &actionFactory{
		byAction: map[string]actionFunc{
			ActionStatus:   onStatus,
			ActionPostpone: onPostpone,
			ActionCancel:   onCancel,
			// старые клиенты присылают "cancelled"
			"cancelled": onCancel,
		},
	}
}

func (f *actionFactory) get(action string) (actionFunc, bool) {
	action = strings.ToLower(strings.TrimSpace(action))
	fn, ok := f.byAction[action]
	return fn, ok
}
