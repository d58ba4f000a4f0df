package cli

import (
	"context"
	"fmt"

	"jobscope/internal/ai"
	"jobscope/internal/analysis"
	"jobscope/internal/common"
	"jobscope/internal/refdata"
	"jobscope/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [cv-file]",
	Short: "Analyze a job opportunity against your CV",
	Long: `Analyze a job opportunity end to end. The command takes the path to
your CV (PDF or text) plus the offer details as flags, and produces a
complete report:

- Company intelligence with web-grounded sources
- Commute cost breakdown between the living and working municipalities
- Cost of living near the work site
- Salary breakdown and W2 / 1099 / Form 480 comparisons
- Negotiation recommendations and a candidate fit score
- A 30-60-90 day onboarding plan
- A CV critique with skill gaps and learning resources

Every section is always present: fields the model leaves out are filled
from local reference data.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

var analyzeFlags struct {
	solicitorName       string
	company             string
	jobTitle            string
	livingMunicipality  string
	workingMunicipality string
	annualSalary        float64
	modality            string
	jobDescriptionFile  string
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	analyzeCmd.Flags().StringVar(&analyzeFlags.solicitorName, "name", "", "Name of the person requesting the analysis")
	analyzeCmd.Flags().StringVar(&analyzeFlags.company, "company", "", "Hiring company name")
	analyzeCmd.Flags().StringVar(&analyzeFlags.jobTitle, "title", "", "Job title of the offer")
	analyzeCmd.Flags().StringVar(&analyzeFlags.livingMunicipality, "living", "", "Municipality you live in")
	analyzeCmd.Flags().StringVar(&analyzeFlags.workingMunicipality, "working", "", "Municipality of the work site")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.annualSalary, "salary", 0, "Offered annual salary in dollars")
	analyzeCmd.Flags().StringVar(&analyzeFlags.modality, "modality", "W2", "Employment structure: W2, 1099, or 480")
	analyzeCmd.Flags().StringVar(&analyzeFlags.jobDescriptionFile, "job-description", "", "Optional job description file")

	_ = analyzeCmd.MarkFlagRequired("company")
	_ = analyzeCmd.MarkFlagRequired("title")
	_ = analyzeCmd.MarkFlagRequired("living")
	_ = analyzeCmd.MarkFlagRequired("working")
	_ = analyzeCmd.MarkFlagRequired("salary")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)

	cv, err := fileProcessor.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}

	var jobDescription *types.Document
	if analyzeFlags.jobDescriptionFile != "" {
		jobDescription, err = fileProcessor.ReadDocument(analyzeFlags.jobDescriptionFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
	}

	request := types.AnalysisRequest{
		SolicitorName:       analyzeFlags.solicitorName,
		Company:             analyzeFlags.company,
		JobTitle:            analyzeFlags.jobTitle,
		LivingMunicipality:  analyzeFlags.livingMunicipality,
		WorkingMunicipality: analyzeFlags.workingMunicipality,
		AnnualSalary:        analyzeFlags.annualSalary,
		Modality:            types.EmploymentModality(analyzeFlags.modality),
		CV:                  cv,
		JobDescription:      jobDescription,
	}

	aiService, err := ai.NewService(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	store := refdata.NewStore()
	if cfg.RefData.OverridesFile != "" {
		if err := store.LoadOverrides(cfg.RefData.OverridesFile); err != nil {
			return fmt.Errorf("failed to load reference data overrides: %w", err)
		}
	}

	analysisService := analysis.NewService(aiService.Provider, store, logger)

	logDetails := func(cmdCfg common.CommandConfig) {
		logger.Info("Starting opportunity analysis",
			"company", request.Company,
			"job_title", request.JobTitle,
			"modality", string(request.Modality),
			"cv_bytes", len(cv.Data),
			"has_job_description", jobDescription != nil,
			"output_format", cmdCfg.OutputFormat)
	}

	err = common.RunReportCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		func(ctx context.Context) (*types.AnalysisReport, error) {
			return analysisService.SubmitAnalysis(ctx, request)
		},
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze opportunity: %w", err)
	}
	logger.Info("Opportunity analysis completed successfully")
	return nil
}
