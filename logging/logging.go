// Package logging controls the levels of the per-package loggers.
package logging

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"go.creack.net/eqcalc/evaluator"
	"go.creack.net/eqcalc/parser"
	"go.creack.net/eqcalc/rest"
)

// logger names
const (
	CORE      = "core"
	PARSER    = "parser"
	EVALUATOR = "evaluator"
	REST      = "rest"
)

// Core is the logger of the command line driver.
var Core = logrus.New()

type logger struct {
	get func() logrus.Level
	set func(logrus.Level)
}

var loggers = map[string]logger{
	CORE:      {get: Core.GetLevel, set: Core.SetLevel},
	PARSER:    {get: parser.GetLogLevel, set: parser.SetLogLevel},
	EVALUATOR: {get: evaluator.GetLogLevel, set: evaluator.SetLogLevel},
	REST:      {get: rest.GetLogLevel, set: rest.SetLogLevel},
}

// Names returns the known logger names, sorted.
func Names() []string {
	names := make([]string, 0, len(loggers))
	for name := range loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetLevel changes the level of a single logger.
func SetLevel(name string, level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "failed to parse level")
	}

	l, ok := loggers[strings.ToLower(name)]
	if !ok {
		return errors.Errorf("'%s' is unknown logger name", name)
	}
	l.set(ll)
	return nil
}

// Levels returns the current level of every logger.
func Levels() map[string]string {
	info := make(map[string]string, len(loggers))
	for name, l := range loggers {
		info[name] = l.get().String()
	}
	return info
}

// Apply sets the levels of several loggers.
func Apply(levels map[string]string) error {
	for name, level := range levels {
		if err := SetLevel(name, level); err != nil {
			return errors.Wrapf(err, "logger %q", name)
		}
	}
	return nil
}

// Defaults makes logging options with the same level for every logger.
func Defaults(level string) map[string]string {
	opts := make(map[string]string, len(loggers))
	for name := range loggers {
		opts[name] = level
	}
	return opts
}
