package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pycst/internal/version"
)

// versionFields выбирает, какие поля сборки показать помимо версии.
type versionFields struct {
	commit, message, date bool
}

func (f versionFields) any() bool { return f.commit || f.message || f.date }

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pycst build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	flags := versionCmd.Flags()
	flags.Bool("hash", false, "include git commit hash")
	flags.Bool("message", false, "include git commit message")
	flags.Bool("date", false, "include build timestamp")
	flags.Bool("full", false, "show all recorded build metadata")
	flags.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	full, _ := flags.GetBool("full")
	var fields versionFields
	fields.commit, _ = flags.GetBool("hash")
	fields.message, _ = flags.GetBool("message")
	fields.date, _ = flags.GetBool("date")
	if full {
		fields = versionFields{commit: true, message: true, date: true}
	}

	info := version.Current()
	out := cmd.OutOrStdout()
	switch format, _ := flags.GetString("format"); strings.ToLower(format) {
	case "json":
		return renderVersionJSON(out, info, fields)
	case "pretty":
		renderVersionPretty(out, info, fields)
		return nil
	default:
		return errors.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

// visible оставляет только запрошенные поля; пустые становятся "unknown".
func (f versionFields) visible(info version.Info) version.Info {
	pick := func(on bool, v string) string {
		if !on {
			return ""
		}
		return valueOr(v, "unknown")
	}
	return version.Info{
		Version: info.Version,
		Commit:  pick(f.commit, info.Commit),
		Message: pick(f.message, info.Message),
		Built:   pick(f.date, info.Built),
	}
}

func renderVersionPretty(out io.Writer, info version.Info, fields versionFields) {
	head := info.Version
	if state.color {
		head = version.Colored()
	}
	fmt.Fprintf(out, "pycst %s\n", head)

	shown := fields.visible(info)
	// один --hash показывает короткий хеш
	if fields.commit && !fields.message && !fields.date {
		shown.Commit = valueOr(version.ShortCommit(), "unknown")
	}
	for _, row := range []struct{ label, value string }{
		{"commit:", shown.Commit},
		{"message:", shown.Message},
		{"built:", shown.Built},
	} {
		if row.value != "" {
			fmt.Fprintf(out, "%-8s %s\n", row.label, row.value)
		}
	}
}

func renderVersionJSON(out io.Writer, info version.Info, fields versionFields) error {
	payload := struct {
		Tool string `json:"tool"`
		version.Info
	}{Tool: "pycst", Info: fields.visible(info)}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
