package cli

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/lexgen/internal/config"
	"github.com/reoring/lexgen/internal/ctxlog"
	"github.com/reoring/lexgen/lexicon"
)

// ErrIssuesFound is returned by check when any document has issues.
var ErrIssuesFound = errors.New("lexicon issues found")

// issueView is the serialized form of a lexicon.Issue.
type issueView struct {
	Document string         `json:"document,omitempty" yaml:"document,omitempty"`
	Path     string         `json:"path" yaml:"path"`
	Code     string         `json:"code" yaml:"code"`
	Message  string         `json:"message" yaml:"message"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "check [paths...]",
		GroupID: "verify",
		Short:   "Validate lexicons and their cross-document references",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.check(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch opts.cfg.Format {
			case config.FormatJSON:
				err = encodeJSON(out, res.view())
			case config.FormatYAML:
				err = encodeYAML(out, res.view())
			default:
				res.print(out)
			}
			if err != nil {
				return err
			}
			if len(res.errors) > 0 {
				return fmt.Errorf("%w: %d", ErrIssuesFound, len(res.errors))
			}
			return nil
		},
	}
}

// checkResult separates issues that fail the check from warnings.
type checkResult struct {
	documents int
	errors    lexicon.Issues
	warnings  lexicon.Issues
}

type checkView struct {
	Documents int         `json:"documents" yaml:"documents"`
	Errors    []issueView `json:"errors" yaml:"errors"`
	Warnings  []issueView `json:"warnings" yaml:"warnings"`
}

func (r *checkResult) view() checkView {
	return checkView{
		Documents: r.documents,
		Errors:    issueViews(r.errors),
		Warnings:  issueViews(r.warnings),
	}
}

func issueViews(iss lexicon.Issues) []issueView {
	out := make([]issueView, 0, len(iss))
	for _, it := range iss {
		out = append(out, issueView{
			Document: it.Document,
			Path:     it.Path,
			Code:     it.Code,
			Message:  it.Text(),
			Params:   it.Params,
		})
	}
	return out
}

func (r *checkResult) print(w io.Writer) {
	if len(r.warnings) > 0 {
		printSection(w, "Warnings", len(r.warnings))
		for _, it := range r.warnings {
			printWarning(w, it.String())
		}
	}
	if len(r.errors) > 0 {
		printSection(w, "Errors", len(r.errors))
		for _, it := range r.errors {
			printError(w, it.String())
		}
		return
	}
	printSuccess(w, fmt.Sprintf("%d lexicon documents OK", r.documents))
}

// check gathers parse, validation and reference issues. Duplicate keys are
// always parsed as warnings so one file does not hide the others; --strict
// turns them into errors afterwards. Parse failures that are not Issues,
// such as unreadable files, are returned as errors.
func (o *options) check(cmd *cobra.Command, args []string) (*checkResult, error) {
	log := ctxlog.FromContext(cmd.Context())

	docs, err := o.loadDocuments(cmd, args, lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn})
	if err != nil {
		if iss, ok := lexicon.AsIssues(err); ok {
			return &checkResult{errors: iss}, nil
		}
		return nil, err
	}

	res := &checkResult{documents: len(docs)}
	coll := lexicon.NewCollection()
	for _, doc := range docs {
		if o.cfg.Strict {
			res.errors = lexicon.AppendIssues(res.errors, doc.Warnings...)
		} else {
			res.warnings = lexicon.AppendIssues(res.warnings, doc.Warnings...)
		}
		if err := doc.Validate(); err != nil {
			iss, ok := lexicon.AsIssues(err)
			if !ok {
				return nil, err
			}
			res.errors = lexicon.AppendIssues(res.errors, iss...)
		}
		coll.Add(doc)
	}
	refIssues := coll.Check()
	log.Debug("checked references", "documents", coll.Len(), "unresolved", len(refIssues))
	res.errors = lexicon.AppendIssues(res.errors, refIssues...)
	return res, nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
