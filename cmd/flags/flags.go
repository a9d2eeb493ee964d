package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ruteri/paper-custody-kit/common"
	"github.com/ruteri/paper-custody-kit/wallet"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
		Output:  cCtx.App.ErrWriter,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// WalletConfig collects the derivation flags into a validated config.
func WalletConfig(cCtx *cli.Context) (wallet.Config, error) {
	cfg := wallet.Config{
		WordCount:         cCtx.Int(WordsFlag.Name),
		AddressType:       wallet.AddressType(cCtx.String(AddressTypeFlag.Name)),
		Testnet:           cCtx.Bool(TestnetFlag.Name),
		DerivationPath:    cCtx.String(DerivationPathFlag.Name),
		AllowPathMismatch: cCtx.Bool(AllowPathMismatchFlag.Name),
	}
	return cfg, cfg.Validate()
}

var PrinterFlag = &cli.StringFlag{
	Name:    "printer",
	EnvVars: []string{"KITPRINTER_PRINTER"},
	Usage:   "CUPS destination to print the kit on. May also be given as the first argument",
}

var CustodiansFlag = &cli.IntFlag{
	Name:  "custodians",
	Value: 2,
	Usage: "number of custodians the words are split between. Must divide the word count",
}

var WordsFlag = &cli.IntFlag{
	Name:  "words",
	Value: 24,
	Usage: "mnemonic length: 12, 15, 18, 21 or 24",
}

var AddressTypeFlag = &cli.StringFlag{
	Name:  "address-type",
	Value: string(wallet.AddressP2WPKH),
	Usage: "address to derive: p2pkh, p2sh-p2wpkh or p2wpkh",
}

var DerivationPathFlag = &cli.StringFlag{
	Name:  "derivation-path",
	Usage: "BIP-32 path of the derived key, defaults to the standard path of the address type",
}

var AllowPathMismatchFlag = &cli.BoolFlag{
	Name:  "allow-path-mismatch",
	Value: false,
	Usage: "accept a derivation path whose purpose or coin type does not match the address type and network",
}

var TestnetFlag = &cli.BoolFlag{
	Name:  "testnet",
	Value: false,
	Usage: "derive testnet addresses",
}

var LangFlag = &cli.StringFlag{
	Name:  "lang",
	Value: "en",
	Usage: "language of the printed texts",
}

var NoRotateFlag = &cli.BoolFlag{
	Name:  "no-rotate",
	Value: false,
	Usage: "do not turn pages upside down",
}

var LPCommandFlag = &cli.StringFlag{
	Name:  "lp-command",
	Value: "lp",
	Usage: "print spooler command, invoked as <cmd> -d <printer> -t <title> -",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var WalletFlags = []cli.Flag{
	WordsFlag,
	AddressTypeFlag,
	DerivationPathFlag,
	AllowPathMismatchFlag,
	TestnetFlag,
}
