package config

import "hdicli/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "HDI Report"
	AppVersion = contracts.Version

	// File Paths (relative to the base directory)
	DefaultRawDir    = "data/raw"
	DefaultOutputDir = "data/output"
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "logs/hdi-report.log"

	// Analysis
	DefaultTopN = 10

	// Output file names
	ClassifiedCSV           = "hdi_classified.csv"
	MostRecentYearCSV       = "hdi_most_recent_year.csv"
	GeneralStatisticsCSV    = "hdi_general_statistics.csv"
	CategoryDistributionCSV = "hdi_category_distribution.csv"
	TopMunicipalitiesCSV    = "hdi_top10.csv"
	ByStateCSV              = "hdi_by_state.csv"
	ByRegionCSV             = "hdi_by_region.csv"
	EvolutionCSV            = "hdi_evolution.csv"
	ComponentsCSV           = "hdi_components.csv"
	ReportFile              = "hdi_report.txt"
	ManifestFile            = "hdi_manifest.json"
	DefaultExcelFile        = "hdi_analysis.xlsx"
	EvolutionChartFile      = "hdi_evolution.png"
	RegionChartFile         = "hdi_by_region.png"
)
