package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Edney2025/edyfinance-pro/client"
	"github.com/Edney2025/edyfinance-pro/config"
	"github.com/Edney2025/edyfinance-pro/domain"
	"github.com/Edney2025/edyfinance-pro/repository"
	"github.com/Edney2025/edyfinance-pro/service"
	"github.com/Edney2025/edyfinance-pro/tui"
)

var (
	cfgPath string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "edyfinance",
	Short: "Portal do cliente EdyFinance",
	Long: `Portal do cliente para consulta de empréstimos e renegociação.

Sem argumentos, abre o portal interativo: login por CPF, lista de
empréstimos com seleção múltipla e proposta de renegociação com
compartilhamento por WhatsApp.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.OutputPaths = []string{"stderr"}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("inicializando logger: %w", err)
		}

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPortal()
	},
}

type deps struct {
	pricing   *client.PricingClient
	identity  *client.GoTrueClient
	admins    client.AdminDirectory
	storage   client.DocumentStorage
	cache     repository.CacheRepository
	gate      *service.SessionGate
	registry  *service.RegistryService
	proposals *service.ProposalService
	share     *service.ShareService
}

func buildDeps() deps {
	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMemoryCache()
	}

	pricing := client.NewPricingClient(cfg.APIBaseURL, logger)
	identity := client.NewGoTrueClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, logger)
	admins := client.NewSupabaseAdminDirectory(cfg.Supabase.URL, cfg.Supabase.AnonKey)
	channel := client.NewWhatsAppChannel(logger)

	return deps{
		pricing:   pricing,
		identity:  identity,
		admins:    admins,
		storage:   client.NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.AnonKey),
		cache:     cache,
		gate:      service.NewSessionGate(identity, admins, logger),
		registry:  service.NewRegistryService(pricing, cache, logger),
		proposals: service.NewProposalService(pricing, logger),
		share:     service.NewShareService(channel),
	}
}

func runPortal() error {
	d := buildDeps()
	app := tui.NewApp(d.gate, d.identity, d.registry, d.proposals, d.share, cfg.LoginDomain, logger)
	return tui.Run(app)
}

var clienteFlag string

var analiseCmd = &cobra.Command{
	Use:   "analise",
	Short: "Imprime a análise de empréstimos de um cliente",
	RunE: func(cmd *cobra.Command, args []string) error {
		clienteID, err := uuid.Parse(clienteFlag)
		if err != nil {
			return fmt.Errorf("--cliente deve ser um UUID válido: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := buildDeps()
		analysis, err := d.registry.Load(ctx, clienteID)
		if err != nil {
			fmt.Fprintln(os.Stderr, service.FailureMessage(err))
			if last, ok := d.registry.LastKnown(ctx, clienteID); ok {
				fmt.Fprintln(os.Stderr, "Exibindo último snapshot conhecido:")
				printAnalysis(last)
			}
			return err
		}

		printAnalysis(analysis)
		return nil
	},
}

func printAnalysis(analysis *domain.Analysis) {
	fmt.Printf("Emprestado: %s  Pago: %s  A vencer: %s\n\n",
		domain.FormatBRL(analysis.TotalBorrowed),
		domain.FormatBRL(analysis.TotalPaid),
		domain.FormatBRL(analysis.TotalDue))
	for _, loan := range analysis.Loans {
		fmt.Printf("%s  %d/%d parcelas de %s  saldo %s\n",
			loan.ID,
			loan.PaidInstallments,
			loan.InstallmentCount,
			domain.FormatBRL(loan.InstallmentAmount),
			domain.FormatBRL(loan.OutstandingBalance))
	}
}

var (
	loansFlag    []string
	parcelasFlag int
	shareFlag    bool
)

var renegociarCmd = &cobra.Command{
	Use:   "renegociar",
	Short: "Solicita uma proposta de renegociação para os empréstimos informados",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		selection := domain.NewSelectionSet()
		for _, id := range loansFlag {
			if id = strings.TrimSpace(id); id != "" {
				selection.Toggle(id)
			}
		}

		d := buildDeps()
		proposal, err := d.proposals.RequestProposal(ctx, selection)
		if err != nil {
			return fmt.Errorf("%s", service.FailureMessage(err))
		}

		fmt.Printf("Saldo devedor total: %s\n", domain.FormatBRL(proposal.TotalOutstanding))
		if proposal.InterestRate != "" {
			fmt.Printf("Taxa aplicada: %s\n", proposal.InterestRate)
		}
		fmt.Println("Opções de parcelamento:")
		for _, option := range proposal.Options {
			fmt.Printf("  %3dx  %s\n", option.Count, domain.FormatBRL(option.Amount))
		}

		if parcelasFlag <= 0 {
			return nil
		}
		for _, option := range proposal.Options {
			if option.Count != parcelasFlag {
				continue
			}
			message := d.share.ComposeMessage(proposal, option)
			fmt.Println("\n" + message)
			fmt.Println("\n" + client.ShareURL(message))
			if shareFlag {
				return d.share.Share(proposal, &option)
			}
			return nil
		}
		return fmt.Errorf("a proposta não contém a opção de %d parcelas", parcelasFlag)
	},
}

var documentosCmd = &cobra.Command{
	Use:   "documentos",
	Short: "Lista os documentos enviados de um cliente",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(clienteFlag); err != nil {
			return fmt.Errorf("--cliente deve ser um UUID válido: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := buildDeps()
		files, err := d.storage.List(ctx, clienteFlag)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("Nenhum documento enviado ainda.")
			return nil
		}
		for _, f := range files {
			fmt.Printf("%s\t%s\n", f.Name, f.PublicURL)
		}
		return nil
	},
}

var enviarCmd = &cobra.Command{
	Use:   "enviar [arquivo]",
	Short: "Envia um documento para a pasta do cliente",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(clienteFlag); err != nil {
			return fmt.Errorf("--cliente deve ser um UUID válido: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		d := buildDeps()
		stored, err := d.storage.Upload(ctx, clienteFlag, args[0], "application/octet-stream", f)
		if err != nil {
			return err
		}
		fmt.Printf("Arquivo enviado: %s\n%s\n", stored.Name, stored.PublicURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "edyfinance.yaml", "caminho do arquivo de configuração")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs de depuração")

	analiseCmd.Flags().StringVar(&clienteFlag, "cliente", "", "id do cliente (UUID)")
	_ = analiseCmd.MarkFlagRequired("cliente")

	renegociarCmd.Flags().StringSliceVar(&loansFlag, "loans", nil, "ids dos empréstimos selecionados")
	renegociarCmd.Flags().IntVar(&parcelasFlag, "parcelas", 0, "opção de parcelamento escolhida")
	renegociarCmd.Flags().BoolVar(&shareFlag, "compartilhar", false, "abre o canal de compartilhamento")

	documentosCmd.Flags().StringVar(&clienteFlag, "cliente", "", "id do cliente (UUID)")
	_ = documentosCmd.MarkFlagRequired("cliente")
	enviarCmd.Flags().StringVar(&clienteFlag, "cliente", "", "id do cliente (UUID)")
	_ = enviarCmd.MarkFlagRequired("cliente")
	documentosCmd.AddCommand(enviarCmd)

	rootCmd.AddCommand(analiseCmd, renegociarCmd, documentosCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
