// Command schemagen generates JSON Schema files for the types contributed by
// Go plugins (--plugin). Programs that can import their models directly
// should embed cli.Execute with a populated registry instead.
package main

import (
	"os"

	"github.com/reoring/schemagen"
	"github.com/reoring/schemagen/cli"
)

func main() {
	os.Exit(cli.Execute(schemagen.NewRegistry()))
}
