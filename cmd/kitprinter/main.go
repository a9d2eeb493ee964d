package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ruteri/paper-custody-kit/cmd/flags"
	"github.com/ruteri/paper-custody-kit/common"
	"github.com/ruteri/paper-custody-kit/custody"
	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/printer"
	"github.com/ruteri/paper-custody-kit/render"
	"github.com/ruteri/paper-custody-kit/texts"
	"github.com/ruteri/paper-custody-kit/wallet"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const jobTitle = "Custody kit"

// deps are the process boundaries of the printer. Tests swap them for fakes.
type deps struct {
	stdin   io.Reader
	stdout  io.Writer
	entropy io.Reader

	newSpooler   func(command, printerName string, log *slog.Logger) (interfaces.Spooler, error)
	listPrinters func(ctx context.Context) ([]string, error)
}

func defaultDeps() deps {
	return deps{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		newSpooler: func(command, printerName string, log *slog.Logger) (interfaces.Spooler, error) {
			s, err := printer.NewLPSpooler(command, printerName, log)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		listPrinters: func(ctx context.Context) ([]string, error) {
			return printer.ListPrinters(ctx, "")
		},
	}
}

var printFlags = append([]cli.Flag{
	flags.PrinterFlag,
	flags.CustodiansFlag,
	flags.LangFlag,
	flags.NoRotateFlag,
	flags.LPCommandFlag,
}, flags.WalletFlags...)

func newApp(d deps) *cli.App {
	return &cli.App{
		Name:           "kitprinter",
		Usage:          "Generate a wallet secret and print it as a split custody kit",
		Version:        common.Version,
		DefaultCommand: "print",
		Writer:         d.stdout,
		Flags:          append(flags.CommonFlags, flags.LogServiceFlagFn(common.PackageName)),
		Commands: []*cli.Command{
			{
				Name:      "print",
				Usage:     "derive a new secret and print the custody kit",
				ArgsUsage: "[printer]",
				Flags:     printFlags,
				Action: func(cCtx *cli.Context) error {
					return runPrint(cCtx, d)
				},
			},
			{
				Name:  "printers",
				Usage: "list the printers the spooler knows about",
				Action: func(cCtx *cli.Context) error {
					printers, err := d.listPrinters(cCtx.Context)
					if err != nil {
						return err
					}
					for _, p := range printers {
						fmt.Fprintln(d.stdout, p)
					}
					return nil
				},
			},
			{
				Name:  "plan",
				Usage: "show the page sequence of a kit without touching any secret",
				Flags: []cli.Flag{flags.CustodiansFlag},
				Action: func(cCtx *cli.Context) error {
					sequencer, err := custody.NewPageSequencer(cCtx.Int(flags.CustodiansFlag.Name))
					if err != nil {
						return err
					}
					tw := table.NewWriter()
					tw.SetStyle(table.StyleRounded)
					tw.AppendHeader(table.Row{"Page", "Kind", "Shields"})
					for spec := range sequencer.Pages() {
						tw.AppendRow(table.Row{fmt.Sprintf("%d/%d", spec.Index, spec.Total), spec.Kind.String(), spec.Kind.Shields()})
					}
					tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
					fmt.Fprintln(d.stdout, tw.Render())
					return nil
				},
			},
		},
	}
}

// runPrint validates everything it can before the secret exists, so a
// misconfigured run never derives anything.
func runPrint(cCtx *cli.Context, d deps) error {
	log := flags.SetupLogger(cCtx)

	printerName := cCtx.Args().First()
	if printerName == "" {
		printerName = cCtx.String(flags.PrinterFlag.Name)
	}
	spooler, err := d.newSpooler(cCtx.String(flags.LPCommandFlag.Name), printerName, log)
	if err != nil {
		return err
	}

	custodians := cCtx.Int(flags.CustodiansFlag.Name)
	cfg, err := flags.WalletConfig(cCtx)
	if err != nil {
		return err
	}
	if err := custody.ValidateSplit(cfg.WordCount, custodians); err != nil {
		return err
	}

	catalog, err := texts.New(cCtx.String(flags.LangFlag.Name))
	if err != nil {
		return err
	}

	deriver, err := wallet.NewDeriver(cfg)
	if err != nil {
		return err
	}
	if d.entropy != nil {
		deriver.WithEntropySource(d.entropy)
	}
	derived, err := deriver.Derive()
	if err != nil {
		return err
	}
	log.Info("Derived wallet", "address", derived.Address, "path", derived.Path.String(), "words", derived.Secret.Len())

	fmt.Fprintln(d.stdout, catalog.Printer(spooler.Name()))
	fmt.Fprintf(d.stdout, "%s: %s\n", catalog.PublicKeyHeading(), derived.PublicKey)
	fmt.Fprintf(d.stdout, "%s: %s\n", catalog.AddressHeading(), derived.Address)

	if !isTerminal(d.stdin) {
		log.Warn("Standard input is not a terminal, reading answers from it as is")
	}
	input := bufio.NewReader(d.stdin)
	addressWithLock, err := prompt(d.stdout, input, catalog.PromptAddress())
	if err != nil {
		return err
	}
	redeemScript, err := prompt(d.stdout, input, catalog.PromptRedeemScript())
	if err != nil {
		return err
	}

	artifact := interfaces.RecoveryArtifact{
		Address:         derived.Address,
		PublicKey:       derived.PublicKey,
		AddressWithLock: addressWithLock,
		RedeemScript:    redeemScript,
	}
	job, err := custody.NewPrintJob(derived.Secret, artifact, custodians, catalog, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		job.Stop()
	}()

	renderer := render.NewPDFRenderer(render.Options{
		Rotate180: !cCtx.Bool(flags.NoRotateFlag.Name),
		Title:     jobTitle,
	})
	pages, err := job.Run(ctx, renderer)
	if err != nil {
		return fmt.Errorf("kit not printed: %w", err)
	}

	var doc bytes.Buffer
	defer func() { clear(doc.Bytes()) }()
	if err := renderer.Output(&doc); err != nil {
		return err
	}

	if err := spooler.Spool(ctx, jobTitle, bytes.NewReader(doc.Bytes())); err != nil {
		return err
	}
	log.Info("Custody kit printed", "printer", spooler.Name(), "pages", pages, "custodians", custodians)

	fmt.Fprintln(d.stdout, catalog.Success())
	return nil
}

func prompt(w io.Writer, r *bufio.Reader, question string) (string, error) {
	fmt.Fprint(w, question+" ")
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: no answer to %q: %w", interfaces.ErrConfig, question, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	app := newApp(defaultDeps())
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
