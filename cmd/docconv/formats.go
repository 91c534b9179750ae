package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-docconv"
)

// runFormats prints the formats the engine can read and write.
func runFormats(w io.Writer) error {
	eng, err := docconv.New()
	if err != nil {
		return err
	}
	defer eng.Teardown()

	printFormats(w, eng.Describe())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Options:    %s\n", strings.Join(docconv.OptionNames(), ", "))
	return nil
}

// printFormats writes one row per format.
func printFormats(w io.Writer, infos []docconv.FormatInfo) {
	fmt.Fprintf(w, "%-10s %-5s %-5s %s\n", "FORMAT", "READ", "WRITE", "FEATURES")
	for _, info := range infos {
		var features []string
		if info.Extensions != 0 {
			features = append(features, "extensions: "+info.Extensions.String())
		}
		if info.Standalone {
			features = append(features, "standalone")
		}
		if info.Highlight {
			features = append(features, "highlight")
		}
		fmt.Fprintf(w, "%-10s %-5s %-5s %s\n",
			info.Format, yesNo(info.Readable), yesNo(info.Writable), strings.Join(features, "; "))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
