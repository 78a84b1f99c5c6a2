package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yourorg/orgadmin/internal/domain"
	"github.com/yourorg/orgadmin/internal/infrastructure/logger"
	"github.com/yourorg/orgadmin/internal/observability/tracing"
	"github.com/yourorg/orgadmin/internal/repository"
	"github.com/yourorg/orgadmin/internal/security/audit"
	"github.com/yourorg/orgadmin/internal/seed"
	"github.com/yourorg/orgadmin/internal/service"
	"github.com/yourorg/orgadmin/internal/worker"
	"github.com/yourorg/orgadmin/pkg/config"
)

// console bundles the wired core for the subcommand handlers.
type console struct {
	store  *service.StoreService
	tree   *service.TreeService
	stats  *service.StatsService
	search *service.SearchService
	imp    *service.ImportService
	auth   *service.AuthService
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	shutdown, err := tracing.Init(context.Background(), log, "orgadmin", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdown(context.Background())

	c, err := newConsole(cfg, log)
	if err != nil {
		log.Error("failed to start console", slog.String("error", err.Error()))
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		c.handleLogin(args)
	case "stats":
		c.handleStats()
	case "tree":
		c.handleTree(args)
	case "search":
		c.handleSearch(args)
	case "log":
		c.handleLog(args)
	case "import":
		c.handleImport(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newConsole(cfg *config.Config, log *slog.Logger) (*console, error) {
	orgRepo := repository.NewOrganizationRepository(log)
	personnelRepo := repository.NewPersonnelRepository(log)
	logRepo := repository.NewOperationLogRepository(log)

	if err := seed.Apply(orgRepo, personnelRepo, logRepo, cfg.OperatorName); err != nil {
		return nil, err
	}

	auditLogger := audit.NewLogger(log)
	store := service.NewStoreService(orgRepo, personnelRepo, logRepo, auditLogger, log, cfg.OperatorName, cfg.OperatorID)
	authService, err := service.NewAuthService(cfg, auditLogger, log)
	if err != nil {
		return nil, err
	}

	return &console{
		store:  store,
		tree:   service.NewTreeService(store, log),
		stats:  service.NewStatsService(store, log),
		search: service.NewSearchService(store, log),
		imp:    service.NewImportService(store, cfg, log),
		auth:   authService,
		cfg:    cfg,
		logger: log,
	}, nil
}

func (c *console) handleLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "operator username")
	password := fs.String("password", "", "shared console password")
	fs.Parse(args)

	result, err := c.auth.Login(*username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("logged in as %s\n", result.OperatorName)
	fmt.Printf("token: %s (expires in %ds)\n", result.Token, result.ExpiresIn)
}

func (c *console) handleStats() {
	stats := c.stats.Statistics()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "organizations\t%d (%d active)\n", stats.TotalOrganizations, stats.ActiveOrganizations)
	fmt.Fprintf(w, "personnel\t%d (%d active)\n", stats.TotalPersonnel, stats.ActivePersonnel)
	fmt.Fprintf(w, "operations logged\t%d\n", stats.RecentOperations)
	fmt.Fprintf(w, "average age\t%.1f\n", stats.AverageAge)
	w.Flush()

	printDistribution("by organization type", stats.OrganizationsByType)
	printDistribution("personnel by status", stats.PersonnelByStatus)
	printDistribution("personnel by department", stats.PersonnelByDepartment)
	printDistribution("salary ranges", stats.SalaryRanges)
	printDistribution("monthly join trend", stats.MonthlyJoinTrend)
}

func (c *console) handleTree(args []string) {
	term := ""
	if len(args) > 0 {
		term = args[0]
	}

	forest := c.tree.FilterTree(term)
	if len(forest) == 0 {
		fmt.Println("no matching organizations")
		return
	}
	for _, root := range forest {
		printNode(root, 0)
	}
}

func (c *console) handleSearch(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: orgadmin search <term>")
		return
	}

	results, active := c.search.Search(args[0])
	if !active {
		fmt.Println("search term is empty; results hidden")
		return
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tMATCHED FIELDS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Type, r.Name, strings.Join(r.MatchedFields, ","))
	}
	w.Flush()
}

func (c *console) handleLog(args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	limit := fs.Int("n", 20, "max entries to show")
	fs.Parse(args)

	entries := c.store.OperationLog()
	if len(entries) > *limit {
		entries = entries[:*limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tENTITY\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Format(time.RFC3339), e.Type, e.EntityType, e.Description)
	}
	w.Flush()
}

func (c *console) handleImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	kind := fs.String("kind", "organization", "organization or personnel")
	file := fs.String("file", "", "JSON file with an array of row objects")
	fs.Parse(args)

	if *file == "" {
		fmt.Println("Usage: orgadmin import -kind <organization|personnel> -file rows.json")
		return
	}

	rows, err := readRows(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read rows: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	importWorker := worker.NewImportWorker(c.imp, c.logger,
		time.Duration(c.cfg.ImportTimeoutSeconds)*time.Second)
	go importWorker.Start(ctx)

	result := <-importWorker.Submit(domain.ImportKind(*kind), rows)
	fmt.Printf("imported: %d succeeded, %d failed of %d rows\n",
		result.Success, result.Failed, len(rows))
	for _, e := range result.Errors {
		fmt.Printf("  row %d [%s]: %s\n", e.Row, e.Field, e.Message)
	}
}

// readRows loads pre-parsed rows from a JSON file. Spreadsheet parsing lives
// with the external record source; the console only accepts the row shape.
func readRows(path string) ([]domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []domain.RawRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid rows file: %w", err)
	}
	return rows, nil
}

func printNode(node *domain.OrgNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s- %s [%s, %s] (%d employees)\n",
		indent, node.Name, node.Type, node.Status, node.EmployeeCount)
	for _, p := range node.Personnel {
		fmt.Printf("%s    %s (%s)\n", indent, p.Name, p.Position)
	}
	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}

func printDistribution(title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for key, count := range dist {
		fmt.Fprintf(w, "  %s\t%d\n", key, count)
	}
	w.Flush()
}

func printUsage() {
	fmt.Println(`orgadmin - organization/personnel administration console

Usage: orgadmin <command> [flags]

Commands:
  login -username <u> -password <p>   verify the shared credential, print a session token
  stats                               print the statistics snapshot
  tree [term]                         print the organization tree, optionally filtered
  search <term>                       search organizations and personnel
  log [-n N]                          print the operation log, newest first
  import -kind <k> -file rows.json    batch import rows from a JSON file
  help                                show this help`)
}
