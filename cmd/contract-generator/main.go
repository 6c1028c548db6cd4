// Package main provides the CLI entrypoint for contract-generator.
//
// contract-generator is a static Go codegen tool that:
//   - Parses Go packages (AST + go/types) to find types marked //rpc:service
//   - Derives one POST operation per exposed method with its access rules
//   - Collects every referenced data type into shared component schemas
//   - Writes the result as an OpenAPI 3 document
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"contract-generator/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
