package output

import (
	"context"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct {
	opts FormatOptions
}

func NewYAMLFormatter(opts FormatOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

func (f *YAMLFormatter) Name() string {
	return "yaml"
}

func (f *YAMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	var v any = report
	if f.opts.Quiet {
		v = report.Summary
	}
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
