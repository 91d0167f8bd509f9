package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/smtimeline/pkg/export"
	"github.com/vhive-serverless/smtimeline/pkg/metric"
	"github.com/vhive-serverless/smtimeline/pkg/plotter"
	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

var (
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	outputPath = flag.String("output", plotter.DefaultOutputPath, "Path of the rendered timeline PNG")
	csvOutput  = flag.String("csvOutput", "", "Optional path for a CSV dump of the normalized timeline")
	summary    = flag.Bool("summary", false, "Log per-group occupancy summaries")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	if flag.NArg() < 1 {
		fmt.Println("Usage: smtimeline [flags] <trace_file>")
		os.Exit(1)
	}

	timeline, err := trace.NewSMTraceParser(flag.Arg(0)).Parse()
	if err != nil {
		log.Fatal(err)
	}

	if *summary {
		metric.Log(metric.Summarize(timeline))
	}

	if *csvOutput != "" {
		if err := export.WriteCSV(timeline, *csvOutput); err != nil {
			log.Fatal(err)
		}
	}

	if err := plotter.NewTimelinePlotter(*outputPath).Render(timeline); err != nil {
		log.Fatal(err)
	}

	log.Infof("Rendered %d (kernel, SM) groups to %s", timeline.NumGroups(), *outputPath)
}
