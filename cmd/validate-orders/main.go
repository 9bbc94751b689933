package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Gunvolt24/purchase-order/pkg/validate"
)

// CLI-приложение для валидации заказов на покупку.
// Валидные заказы печатаются в stdout в каноническом виде, итог, в stderr.
func main() {
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: validate-orders [-format auto|json|jsonl] [file ...]\n"+
			"Without files reads stdin (jsonl unless -format json).\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	orderValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	// stdin вариант: считаем, что jsonl
	if flag.NArg() == 0 {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		summary, err := validate.ValidateReader(ctx, orderValidator, os.Stdin, format, os.Stdout)
		report("stdin", summary, err)
		if err != nil {
			os.Exit(1)
		}
		return
	}

	failed := false
	for _, path := range flag.Args() {
		summary, err := validate.ValidateFile(ctx, orderValidator, path, format, os.Stdout)
		report(path, summary, err)
		if err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func report(source, summary string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: validation: %v (%s)\n", source, err, summary)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: validation ok (%s)\n", source, summary)
}
