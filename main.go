package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	// Command line flags
	mode := flag.String("mode", "web", "Run mode: web, cli")
	configPath := flag.String("config", ".", "Directory containing config.yaml")
	addr := flag.String("addr", "", "Listen address override (default from config)")
	action := flag.String("action", "daily", "CLI action: daily, analysis, export")
	date := flag.String("date", "", "Date for the daily view (YYYYMMDD, default today)")
	investor := flag.String("investor", "foreigner", "Investor category: foreigner, individual, institution")
	days := flag.String("days", "7", "Analysis window in trading days [1,30]")
	startDate := flag.String("start", "", "Export range start (YYYYMMDD)")
	endDate := flag.String("end", "", "Export range end (YYYYMMDD)")
	flag.Parse()

	InitLogger()
	defer Logger.Sync()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch *mode {
	case "web":
		runWebMode(cfg, *addr)
	case "cli":
		runCLIMode(cfg, *action, *date, *investor, *days, *startDate, *endDate)
	default:
		log.Fatalf("Unknown mode: %s. Available modes: web, cli", *mode)
	}
}

func runWebMode(cfg *Config, addr string) {
	if addr == "" {
		addr = cfg.ListenAddr
	}

	server := NewWebServer(cfg)
	defer server.Close()

	// Warm the home page so the first browser hit sees data, not an
	// idle machine. Failures just leave the banner set.
	server.orch.Apply(server.store.SetActivePage(PageHome))

	if err := server.Run(addr); err != nil {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

func runCLIMode(cfg *Config, action, date, investor, days, startDate, endDate string) {
	client := NewFlowClient(cfg.APIBaseURL, cfg.ExportBaseURL)
	store := NewStore()
	orch := NewOrchestrator(client, store)

	inv := Investor(investor)
	if !inv.Valid() {
		log.Fatalf("Unknown investor: %s. Available: foreigner, individual, institution", investor)
	}

	switch action {
	case "daily":
		store.SetActiveInvestor(inv)
		if date != "" {
			store.SetDate(date)
		}
		orch.Apply(store.SetActivePage(PageHome))

		daily := orch.Daily()
		if daily == nil {
			log.Fatalf("%s", store.State().LastError)
		}
		printDailyTable(BuildDailyTable(daily), inv)

	case "analysis":
		store.SetAnalysisInvestor(inv)
		store.SetAnalysisWindowDays(parseWindowDays(days))
		orch.Apply(store.SetActivePage(PageAnalysis))

		analysis := orch.Analysis()
		if analysis == nil {
			log.Fatalf("%s", store.State().LastError)
		}
		printAnalysisTables(BuildAnalysisTables(analysis), inv)

	case "export":
		locator, ok := client.ExportURL(ExportRequest{
			StartDate: startDate,
			EndDate:   endDate,
			Investors: AllInvestors,
		})
		if !ok {
			log.Fatalf("Export needs both -start and -end dates")
		}
		fmt.Println(locator)

	default:
		log.Printf("Unknown action: %s", action)
		log.Printf("Available actions: daily, analysis, export")
		os.Exit(1)
	}
}

func printDailyTable(table DailyTable, investor Investor) {
	fmt.Printf("=== Daily net flow (%s, %s) ===\n", investor, table.Date)
	fmt.Println("\n-- Top net buy --")
	printRows(table.Buy)
	fmt.Println("\n-- Top net sell --")
	printRows(table.Sell)
}

func printAnalysisTables(tables AnalysisTables, investor Investor) {
	fmt.Printf("=== Window analysis (%s, %s ~ %s) ===\n", investor, tables.StartDate, tables.EndDate)
	fmt.Println("\n-- Cumulative net buy --")
	printRows(tables.Buy)
	fmt.Println("\n-- Cumulative net sell --")
	printRows(tables.Sell)
	fmt.Println("\n-- Consecutive net buy --")
	printPatternTable(tables.Consecutive)
	fmt.Println("\n-- New inflow --")
	printPatternTable(tables.NewInflow)
}

func printPatternTable(table PatternTable) {
	if table.Placeholder {
		fmt.Println("(no matching stocks)")
		return
	}
	printRows(table.Rows)
}

func printRows(rows []StockRow) {
	for _, row := range rows {
		fmt.Printf("%3d  %-8s %-20s %14s %10s %8s\n",
			row.Rank, row.Ticker, row.Name, row.Amount, row.Price, row.Change)
	}
}
