package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"crudgen/internal/config"
	"crudgen/internal/django"
	"crudgen/internal/dsl"
	"crudgen/internal/logging"
	"crudgen/internal/output"
	"crudgen/internal/reference"
	"crudgen/internal/scaffold"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
	now        func() time.Time
}

// NewRootCmd собирает дерево команд. now == nil — системные часы.
func NewRootCmd(now func() time.Time) *cobra.Command {
	opts := &rootOptions{now: now}

	root := &cobra.Command{
		Use:   "crudgen",
		Short: "Generate Django CRUD boilerplate (models, forms, views, urls)",
		Long: `crudgen writes a Django app skeleton for one model:

  <out>/building_app/build.txt         setup commands
  <out>/APP_Files/<app>/models.py      model with one attribute per field
  <out>/APP_Files/<app>/forms.py       ModelForm over all fields
  <out>/APP_Files/<app>/views.py       list/detail/create/update/delete
  <out>/APP_Files/<app>/urls.py        five routes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			// явно заданные флаги сильнее файла и окружения
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.OutputDir, _ = flags.GetString("out")
			}
			if flags.Changed("types") {
				cfg.TypesDir, _ = flags.GetString("types")
			}
			if flags.Changed("fix-save") {
				cfg.FixSaveCall, _ = flags.GetBool("fix-save")
			}
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logging.Init(cmd.ErrOrStderr(), level, cfg.LogFormat)
			opts.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to config YAML")
	pf.String("types", "", "Directory with YAML field-type catalogs")
	pf.String("log-level", "", "Log level (debug/info/warn/error)")

	root.AddCommand(newGenerateCmd(opts), newTypesCmd(opts))
	return root
}

// Execute — точка входа cmd/crudgen.
func Execute(ctx context.Context) error {
	return NewRootCmd(nil).ExecuteContext(ctx)
}

func (o *rootOptions) mapper() (*django.Mapper, error) {
	catalog, err := reference.LoadTypeCatalog(o.cfg.TypesDir)
	if err != nil {
		return nil, fmt.Errorf("load type catalog: %w", err)
	}
	return django.NewMapper(catalog), nil
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var req dsl.Request

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the scaffold for one model",
		Example: `  crudgen generate --project mysite --app blog --model Post \
    --fields title:text,published_date:date,views:integer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := dsl.Validate(req); len(errs) > 0 {
				return fmt.Errorf("invalid input: %s", dsl.Join(errs))
			}
			mapper, err := opts.mapper()
			if err != nil {
				return err
			}
			gen := &scaffold.Generator{
				Store:  output.NewLocalStore(opts.cfg.OutputDir),
				Mapper: mapper,
				Now:    opts.now,
				Views:  django.ViewOptions{FixSaveCall: opts.cfg.FixSaveCall},
				Logger: slog.Default(),
			}
			res, err := gen.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ProjectName, "project", "", "Django project name")
	f.StringVar(&req.AppName, "app", "", "Django app name")
	f.StringVar(&req.EntityName, "model", "", "Model class name")
	f.StringVar(&req.FieldSpec, "fields", "", "Comma-separated name:type pairs")
	f.String("out", "", "Output root (default from config: OUTPUT)")
	f.Bool("fix-save", false, "Emit obj.save() in views.py (changes generated output)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func newTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Print the effective field-type mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mapper, err := opts.mapper()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TOKEN\tFIELD\tMAX_LENGTH")
			for _, e := range mapper.Table() {
				ml := "-"
				if e.MaxLength > 0 {
					ml = fmt.Sprint(e.MaxLength)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Token, e.Field, ml)
			}
			fmt.Fprintf(tw, "*\t%s\t%d\n", django.DefaultMapping.Field, django.DefaultMapping.MaxLength)
			return tw.Flush()
		},
	}
}

func printResult(w io.Writer, res scaffold.Result) error {
	if _, err := fmt.Fprintf(w, "request %s -> %s\n", res.RequestID, res.Root); err != nil {
		return err
	}
	for _, a := range res.Artifacts {
		if _, err := fmt.Fprintf(w, "  %s (%d bytes)\n", a.Path, a.Size); err != nil {
			return err
		}
	}
	return nil
}
