package cli

import (
	"github.com/spf13/cobra"

	"github.com/reoring/lexgen"
	"github.com/reoring/lexgen/internal/ctxlog"
	"github.com/reoring/lexgen/lexicon"
)

func (o *options) parseOptions() lexicon.ParseOptions {
	opts := lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn}
	if o.cfg.Strict {
		opts.OnDuplicateKey = lexicon.Error
	}
	return opts
}

// loadDocuments parses every lexicon under the resolved paths.
func (o *options) loadDocuments(cmd *cobra.Command, args []string, opts lexicon.ParseOptions) ([]*lexicon.Document, error) {
	paths, err := o.paths(args)
	if err != nil {
		return nil, err
	}
	return lexicon.LoadFiles(cmd.Context(), opts, paths...)
}

// loadContext parses and validates the lexicons and appends them to a new
// GenerateContext. Validation issues of all documents are returned together.
func (o *options) loadContext(cmd *cobra.Command, args []string) (*lexgen.GenerateContext, error) {
	docs, err := o.loadDocuments(cmd, args, o.parseOptions())
	if err != nil {
		return nil, err
	}

	var issues lexicon.Issues
	gc := lexgen.NewGenerateContext()
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			if iss, ok := lexicon.AsIssues(err); ok {
				issues = lexicon.AppendIssues(issues, iss...)
				continue
			}
			return nil, err
		}
		gc.Append(doc)
	}
	if len(issues) > 0 {
		return nil, issues
	}
	ctxlog.FromContext(cmd.Context()).Info("lexicons loaded", "documents", len(docs))
	return gc, nil
}
