package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/voyis/grayscale"
	"github.com/voyis/grayscale/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┬─┐┌─┐┬ ┬┌─┐┌─┐┌─┐┬  ┌─┐
│ ┬├┬┘├─┤└┬┘└─┐│  ├─┤│  ├┤
└─┘┴└─┴ ┴ ┴ └─┘└─┘┴ ┴┴─┘└─┘

RGBA to grayscale image converter.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	var (
		source      = flag.String("in", pipeName, "Source image, directory or URL")
		destination = flag.String("out", pipeName, "Destination image or directory")
		workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
		pixWorkers  = flag.Int("workers", runtime.NumCPU(), "Number of goroutines converting a single image")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NFlag() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		os.Exit(2)
	}

	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("◐ GRAYSCALE", utils.StatusMessage),
		utils.DecorateText("⇢ converting image...", utils.DefaultMessage),
	)
	proc := &grayscale.Processor{
		Workers: *pixWorkers,
		Spinner: utils.NewSpinner(msg, time.Millisecond*80, true),
	}

	op := &grayscale.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}
	if err := proc.Execute(op); err != nil {
		log.Fatalf("%s%s",
			utils.DecorateText("\nError converting the image: ", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	if *destination != pipeName {
		fmt.Fprintf(os.Stderr, "The result has been saved as: %s\n",
			utils.DecorateText(*destination, utils.SuccessMessage))
	}
}
