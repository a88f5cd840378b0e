package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/validation"
)

const skipOption = "(skip)"

// Theme captures optional prefixes applied to informational and error lines.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// FileOpener resolves a path typed by the user into an attachment.
type FileOpener func(path string) (*form.File, error)

// Option configures the collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// WithFileOpener replaces form.OpenFile for file fields.
func WithFileOpener(open FileOpener) Option {
	return func(c *Collector) {
		if open != nil {
			c.openFile = open
		}
	}
}

// Collector fills a role form interactively, one prompt per field. Fields
// that fail validation are asked again until they pass or the driver errors.
type Collector struct {
	driver   PromptDriver
	theme    Theme
	openFile FileOpener
}

// NewCollector builds a collector backed by survey unless a driver is
// supplied.
func NewCollector(options ...Option) *Collector {
	c := &Collector{
		theme:    Theme{ErrorPrefix: "✗ "},
		openFile: form.OpenFile,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect prompts every field of the state's role in declaration order and
// returns the filled state. Current values are offered as defaults.
func (c *Collector) Collect(ctx context.Context, state form.State) (form.State, error) {
	role := state.Role()
	for _, field := range role.Fields {
		for {
			next, err := c.promptField(ctx, field, state)
			if err != nil {
				return state, fmt.Errorf("tui: prompt %s: %w", field.Name, err)
			}
			state = next

			msg := validation.Validate(role, state).Get(field.Name)
			if msg == "" {
				break
			}
			if err := c.driver.Info(ctx, c.theme.ErrorPrefix+field.Label+": "+msg); err != nil {
				return state, err
			}
		}
	}
	return state, nil
}

// Review prints the collected values, one "Label: value" line per field.
func (c *Collector) Review(ctx context.Context, state form.State) error {
	role := state.Role()
	if err := c.driver.Info(ctx, c.theme.InfoPrefix+"Role: "+role.RoleLabel); err != nil {
		return err
	}
	snapshot := state.Snapshot()
	for _, field := range role.Fields {
		var display string
		switch value := snapshot[field.Name].(type) {
		case string:
			display = value
		case []string:
			display = strings.Join(value, ", ")
		}
		if display == "" {
			display = "-"
		}
		if err := c.driver.Info(ctx, c.theme.InfoPrefix+field.Label+": "+display); err != nil {
			return err
		}
	}
	return nil
}

// Confirm asks a yes/no question, defaulting to yes.
func (c *Collector) Confirm(ctx context.Context, message string) (bool, error) {
	return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
}

// Info prints msg with the info prefix.
func (c *Collector) Info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, c.theme.InfoPrefix+msg)
}

func (c *Collector) promptField(ctx context.Context, field schema.FieldDescriptor, state form.State) (form.State, error) {
	switch field.Kind {
	case schema.KindText, schema.KindPhone, schema.KindURL:
		return c.promptText(ctx, field, state)
	case schema.KindSelect, schema.KindRadio:
		return c.promptChoice(ctx, field, state)
	case schema.KindCheckboxGroup:
		return c.promptChoices(ctx, field, state)
	case schema.KindFile:
		return c.promptFile(ctx, field, state)
	default:
		return state, fmt.Errorf("unsupported field kind %q", field.Kind)
	}
}

func (c *Collector) promptText(ctx context.Context, field schema.FieldDescriptor, state form.State) (form.State, error) {
	answer, err := c.driver.Input(ctx, InputConfig{
		Message: promptLabel(field),
		Default: state.Text(field.Name),
		Help:    field.Placeholder,
	})
	if err != nil {
		return state, err
	}
	return state.SetValue(field.Name, form.Text(strings.TrimSpace(answer)))
}

func (c *Collector) promptChoice(ctx context.Context, field schema.FieldDescriptor, state form.State) (form.State, error) {
	labels := optionLabels(field)
	if !field.Required {
		labels = append(labels, skipOption)
	}
	current := state.Text(field.Name)
	defaultIdx := -1
	for idx, option := range field.Options {
		if option.Value == current {
			defaultIdx = idx
		}
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return state, err
	}
	value := ""
	if idx >= 0 && idx < len(field.Options) {
		value = field.Options[idx].Value
	}
	return state.SetValue(field.Name, form.Text(value))
}

func (c *Collector) promptChoices(ctx context.Context, field schema.FieldDescriptor, state form.State) (form.State, error) {
	current := state.Choices(field.Name)
	var defaults []int
	for idx, option := range field.Options {
		if current.Contains(option.Value) {
			defaults = append(defaults, idx)
		}
	}

	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptLabel(field),
		Options:  optionLabels(field),
		Defaults: defaults,
	})
	if err != nil {
		return state, err
	}
	var chosen form.Choices
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			chosen = chosen.With(field.Options[idx].Value)
		}
	}
	return state.SetValue(field.Name, chosen)
}

func (c *Collector) promptFile(ctx context.Context, field schema.FieldDescriptor, state form.State) (form.State, error) {
	help := validation.AcceptedFilesHint
	for {
		path, err := c.driver.Input(ctx, InputConfig{
			Message: promptLabel(field) + " (path)",
			Help:    help,
		})
		if err != nil {
			return state, err
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return state.SetValue(field.Name, form.Attach(nil))
		}
		file, err := c.openFile(path)
		if err != nil {
			if err := c.driver.Info(ctx, c.theme.ErrorPrefix+err.Error()); err != nil {
				return state, err
			}
			continue
		}
		return state.SetValue(field.Name, form.Attach(file))
	}
}

func promptLabel(field schema.FieldDescriptor) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func optionLabels(field schema.FieldDescriptor) []string {
	out := make([]string, 0, len(field.Options)+1)
	for _, option := range field.Options {
		out = append(out, option.Label)
	}
	return out
}
