package grayscale

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/voyis/grayscale/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently processed files.
const maxWorkers = 20

// SrcExtensions lists the file extensions accepted as input.
var SrcExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// DstExtensions lists the file extensions which can be encoded.
var DstExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// Ops holds the source and destination of an Execute call.
type Ops struct {
	Src, Dst, PipeName string
	// Workers is the number of files processed concurrently when Src is a directory.
	Workers int
}

// result holds the outcome of converting a single file.
type result struct {
	path string
	err  error
}

// Execute converts the source described by op, which can be a regular file,
// a pipe, an URL or a directory. Directories are walked recursively and the
// images found are converted concurrently into the destination directory.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		err error
	)

	if p.Spinner == nil {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("◐ GRAYSCALE", utils.StatusMessage),
			utils.DecorateText("⇢ converting image...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer os.Remove(src.Name())
			defer src.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		op.Src = src.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	// Capture CTRL-C signal and restore the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		close(signalChan)
	}()
	go func() {
		if _, ok := <-signalChan; ok {
			p.Spinner.RestoreCursor()
			os.Exit(1)
		}
	}()

	now := time.Now()
	p.Spinner.Start()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if op.Dst == op.PipeName {
			err = errors.New("a directory source needs a destination directory, not a pipe")
			break
		}
		err = op.walk(p)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if op.Dst != op.PipeName && !utils.Contains(DstExtensions, ext) {
			err = fmt.Errorf("%v file type not supported", ext)
			break
		}
		err = op.process(p, op.Src, op.Dst)
	default:
		err = fmt.Errorf("%s is not a regular file or directory", op.Src)
	}

	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
			utils.DecorateText("◐ GRAYSCALE", utils.StatusMessage),
			utils.DecorateText("converting image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
		p.Spinner.Stop()
		return err
	}

	p.Spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
		utils.DecorateText("◐ GRAYSCALE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been converted successfully ✔", utils.SuccessMessage),
	)
	p.Spinner.Stop()

	if op.Dst != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return nil
}

// walk converts the images found in op.Src into op.Dst using a bounded pool of workers.
// The first failure is returned after every worker has finished.
func (op *Ops) walk(p *Processor) error {
	absSrc, err := filepath.Abs(op.Src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(op.Dst)
	if err != nil {
		return err
	}
	if absSrc == absDst {
		return errors.New("the destination directory must differ from the source directory")
	}

	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
	}

	// Limit the concurrently running workers to maxWorkers.
	if op.Workers <= 0 || op.Workers > maxWorkers {
		op.Workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	var wg sync.WaitGroup
	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, op.Src, absDst, SrcExtensions)

	wg.Add(op.Workers)
	for i := 0; i < op.Workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var firstErr error
	for res := range ch {
		if res.err != nil {
			log.Printf("%s %s",
				utils.DecorateText(filepath.Base(res.path), utils.ErrorMessage),
				utils.DecorateText(res.err.Error(), utils.DefaultMessage),
			)
			if firstErr == nil {
				firstErr = res.err
			}
		}
	}

	if err := <-errc; err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// consumer reads the path names from the paths channel and converts each of them.
// Destination file names are built from the path relative to the source directory,
// keeping the tree layout.
func (op *Ops) consumer(
	p *Processor,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		rel, err := filepath.Rel(op.Src, src)
		if err != nil {
			rel = filepath.Base(src)
		}
		dst := filepath.Join(op.Dst, rel)
		if !utils.Contains(DstExtensions, strings.ToLower(filepath.Ext(dst))) {
			dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
		}

		if err = os.MkdirAll(filepath.Dir(dst), 0755); err == nil {
			err = op.process(p, src, dst)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process converts a single image and removes the destination file in case of an error.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// The skip directory, given as an absolute path, is not descended into.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src, skip string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if f.IsDir() {
				if abs, err := filepath.Abs(path); err == nil && abs == skip {
					return filepath.SkipDir
				}
				return nil
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
