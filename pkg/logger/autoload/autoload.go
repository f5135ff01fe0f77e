// Package autoload configures logging as a side effect of being imported.
// Blank-import it from main before anything logs.
package autoload

import (
	configx "github.com/salesloop/prepagent/pkg/config"
	logx "github.com/salesloop/prepagent/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
