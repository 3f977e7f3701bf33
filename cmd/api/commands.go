package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pet-care-log/internal/adapters/export/spreadsheet"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/config"
	"pet-care-log/internal/domain/careevents"
	"pet-care-log/internal/domain/conversation"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the care event table and indexes, then exit",
	Args:  cobra.NoArgs,
	RunE:  runInitDB,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export care events to an xlsx file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Print which rule a message would match (no I/O)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

var (
	exportOut   string
	exportUser  string
	exportLimit int
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "care_events.xlsx", "Output xlsx path")
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Only events of this LINE user id")
	exportCmd.Flags().IntVar(&exportLimit, "limit", careevents.MaxListLimit, "Maximum number of events")
}

func loadStoreConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	cfg, err := loadStoreConfig()
	if err != nil {
		return err
	}

	db, dialect, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s, table %s)\n", dialect, sqlstore.TableName)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadStoreConfig()
	if err != nil {
		return err
	}

	db, dialect, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := careevents.NewService(sqlstore.NewCareEventsRepo(db, dialect))
	events, err := svc.List(cmd.Context(), careevents.ListFilter{
		SenderID: strings.TrimSpace(exportUser),
		Limit:    exportLimit,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	if err := spreadsheet.WriteCareEvents(f, events); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d events to %s\n", len(events), exportOut)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	it := conversation.NewClassifier(conversation.DefaultRules()).Classify(strings.Join(args, " "))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "intent=%s", it.Kind)
	if it.Rule != "" {
		fmt.Fprintf(out, " rule=%s", it.Rule)
	}
	if it.Action != "" {
		fmt.Fprintf(out, " action=%s", it.Action.Slug())
	}
	fmt.Fprintln(out)
	return nil
}
