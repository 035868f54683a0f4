package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"sigs.k8s.io/yaml"

	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// Output formats.
const (
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputPretty = "pretty"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []string{OutputJSON, OutputYAML, OutputPretty}

// Failure is the document written when an invocation fails. Msg is the
// remote error body when the service returned one.
type Failure struct {
	Failed bool `json:"failed"`
	Msg    any  `json:"msg"`
}

func validateOutput(format string) error {
	if format == "" || slices.Contains(OutputFormats, format) {
		return nil
	}
	return reconcile.ConfigurationError("", "", "output must be one of: %v", OutputFormats)
}

// failureFor builds the failure document. Remote errors keep their parsed body.
func failureFor(err error) Failure {
	if apiErr, ok := rancher.AsAPIError(err); ok {
		return Failure{Failed: true, Msg: apiErr.Detail()}
	}
	return Failure{Failed: true, Msg: err.Error()}
}

func writeResult(w io.Writer, format, title string, result *reconcile.Result) error {
	if format == OutputPretty {
		_, err := io.WriteString(w, renderResult(title, result))
		return err
	}
	return encode(w, format, result)
}

func writeFailure(w io.Writer, format string, err error) error {
	failure := failureFor(err)
	if format == OutputPretty {
		_, writeErr := io.WriteString(w, renderFailure(failure))
		return writeErr
	}
	return encode(w, format, failure)
}

// encode writes v as YAML when asked and as indented JSON otherwise.
func encode(w io.Writer, format string, v any) error {
	if format == OutputYAML {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
