package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pterm/pterm"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/flags"
	"jobscreen-engine/internal/model"
	"jobscreen-engine/internal/predict"
)

func main() {
	modelDir := flag.String("model", "model", "model bundle directory")
	file := flag.String("file", "", "posting text file (default: stdin)")
	asJSON := flag.Bool("json", false, "print the raw result JSON")
	flag.Parse()

	raw, err := readInput(*file)
	if err != nil {
		log.Fatal(err)
	}

	if analyze.DetectInputType(raw) == domain.InputURL {
		log.Fatal("input looks like a URL; paste the posting text instead")
	}
	if err := analyze.ValidateText(raw); err != nil {
		log.Fatalf("input rejected: %v", err)
	}

	bundle, err := model.Load(*modelDir)
	if err != nil {
		log.Fatalf("model load failed: %v", err)
	}

	a := analyze.New(bundle, flags.NewDetector(nil), predict.DefaultWeights())

	p := analyze.ParseText(raw)
	res, err := a.Analyze(context.Background(), p)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		return
	}

	render(res)
	if res.IsFake {
		os.Exit(1)
	}
}

func readInput(file string) (string, error) {
	if file == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}

func render(res domain.AnalysisResult) {
	verdict := pterm.Green("likely legitimate")
	if res.IsFake {
		verdict = pterm.Red("LIKELY FAKE")
	}

	fmt.Println()
	pterm.DefaultSection.Printf("%s — %s", res.JobTitle, res.Company)

	data := pterm.TableData{
		{"Verdict", verdict},
		{"Confidence", fmt.Sprintf("%.1f%%", res.CombinedConfidence)},
		{"Quality", colorTier(res.JobQuality)},
		{"Red flags", fmt.Sprintf("%d (%s)", res.RedFlagCount, res.RedFlagSeverity)},
		{"Domain score", fmt.Sprintf("%.2f", res.DomainScore)},
		{"Location", res.Location},
		{"Portal", res.Portal},
	}
	_ = pterm.DefaultTable.WithData(data).Render()

	for _, f := range res.RedFlags {
		switch f.Severity {
		case domain.SeverityHigh:
			pterm.Println(pterm.Red("  ✗ " + f.Name))
		case domain.SeverityMedium:
			pterm.Println(pterm.Yellow("  ! " + f.Name))
		default:
			pterm.Println(pterm.Gray("  · " + f.Name))
		}
	}

	for _, wmsg := range res.Warnings {
		pterm.Println(pterm.Gray("  note: " + wmsg))
	}
	fmt.Println()
}

func colorTier(tier string) string {
	switch tier {
	case "EXCELLENT", "VERY HIGH", "HIGH":
		return pterm.Green(tier)
	case "GOOD", "MODERATE", "FAIR":
		return pterm.Yellow(tier)
	default:
		return pterm.Red(tier)
	}
}
