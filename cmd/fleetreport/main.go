package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/internal/version"
	"github.com/younsl/fleetreport/pkg/annotation"
	"github.com/younsl/fleetreport/pkg/aws"
	"github.com/younsl/fleetreport/pkg/formatter"
	"github.com/younsl/fleetreport/pkg/history"
	"github.com/younsl/fleetreport/pkg/report"
	"github.com/younsl/fleetreport/pkg/utils"
)

// DefaultDays is the default length of the analysis window
const DefaultDays = 30

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "fleetreport",
		Short: "Report EC2 instance placement and licensing history",
		Long: `fleetreport reconstructs which EC2 instances existed during a window,
classifies them by tenancy, operating system and license, and prints the
matching instances together with a per-day instance count.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Println(version.Get())
				return nil
			}
			return run(cmd.Context(), opts, os.Stdout)
		},
	}

	defaultRegions := []string{utils.GetDefaultRegion()}

	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().StringSliceVarP(&opts.regions, "regions", "r", nil,
		fmt.Sprintf("AWS regions to scan (comma separated, default: %s)", strings.Join(defaultRegions, ", ")))
	rootCmd.Flags().IntVarP(&opts.days, "days", "d", DefaultDays, "Length of the analysis window in days")
	rootCmd.Flags().StringVar(&opts.end, "end", "", "Last day of the analysis window (YYYY-MM-DD, default: today)")
	rootCmd.Flags().StringVarP(&opts.annotationsFile, "annotations", "a", "",
		"YAML file with image OS/license classifications, overriding AMI metadata")
	rootCmd.Flags().BoolVar(&opts.excludeFleet, "exclude-fleet", false, "Exclude instances on shared hosts")
	rootCmd.Flags().BoolVar(&opts.excludeSoleTenant, "exclude-sole-tenant", false, "Exclude instances on dedicated hosts")
	rootCmd.Flags().StringSliceVar(&opts.operatingSystems, "os", nil, "Operating systems to include (windows, linux, unknown)")
	rootCmd.Flags().StringSliceVar(&opts.licenses, "license", nil, "License types to include (spla, byol, unknown)")
	rootCmd.Flags().StringVar(&opts.selectStart, "select-start", "", "Only list instances first seen on or after this day (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&opts.selectEnd, "select-end", "", "Only list instances first seen on or before this day (YYYY-MM-DD)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// startSpinner creates and starts a spinner with the given message
func startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return s
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(opts.regions) == 0 {
		opts.regions = []string{utils.GetDefaultRegion()}
	}
	regions, invalid := utils.ValidateRegions(opts.regions)
	for _, r := range invalid {
		fmt.Fprintf(out, "Warning: Skipping invalid region '%s'\n", r)
	}
	if len(regions) == 0 {
		return fmt.Errorf("no valid regions specified (supported: %s)", strings.Join(utils.SupportedRegions(), ", "))
	}

	windowStart, windowEnd, err := opts.window(time.Now())
	if err != nil {
		return err
	}
	filter, err := opts.filter()
	if err != nil {
		return err
	}
	selection, err := opts.selection(windowStart, windowEnd)
	if err != nil {
		return err
	}

	var file *annotation.File
	if opts.annotationsFile != "" {
		if file, err = annotation.LoadFile(opts.annotationsFile); err != nil {
			return err
		}
	}

	scanStartTime := time.Now()
	s := startSpinner(fmt.Sprintf("Reading instance history in %d region(s) ...", len(regions)))
	results := scanRegions(ctx, regions, windowStart, windowEnd)
	scanDuration := time.Since(scanStartTime)

	archive, count, err := buildArchive(results, windowStart, windowEnd)
	s.FinalMSG = fmt.Sprintf("✓ [%d instances found] EC2 history analyzed - Completed in %.2f seconds\n",
		count, scanDuration.Seconds())
	s.Stop()
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.err != nil {
			fmt.Fprintf(out, "Error in region %s: %v\n", result.region, result.err)
		}
	}

	if file != nil {
		if err := file.Apply(archive.Annotations()); err != nil {
			return fmt.Errorf("apply annotations: %w", err)
		}
	}

	view := report.NewView(archive)
	view.SetFilter(filter)
	view.Repopulate()
	if selection != nil {
		if err := view.SetSelection(*selection); err != nil {
			return err
		}
	}

	formatter.PrintWindow(out, windowStart, windowEnd, scanDuration)
	formatter.PrintInstancesTable(out, view.Instances(), archive.Annotations())
	fmt.Fprintln(out)
	formatter.PrintHistogram(out, view.Histogram())
	formatter.PrintSummary(out, view.Summary())

	return nil
}

// regionResult is the outcome of scanning one region
type regionResult struct {
	region      string
	placements  []aws.Placement
	annotations []models.LicenseAnnotation
	err         error
}

// scanRegions reads all regions in parallel. Results keep the region order.
func scanRegions(ctx context.Context, regions []string, windowStart, windowEnd time.Time) []regionResult {
	results := make([]regionResult, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, r string) {
			defer wg.Done()
			results[idx] = scanRegion(ctx, r, windowStart, windowEnd)
		}(i, region)
	}
	wg.Wait()

	return results
}

func scanRegion(ctx context.Context, region string, windowStart, windowEnd time.Time) regionResult {
	result := regionResult{region: region}

	client, err := aws.NewFleetClient(ctx, region)
	if err != nil {
		result.err = err
		return result
	}

	placements, err := client.GetPlacements(ctx, windowStart, windowEnd)
	if err != nil {
		result.err = err
		return result
	}
	result.placements = placements

	seen := make(map[string]bool)
	var imageIDs []string
	for _, p := range placements {
		if id := p.Observation.Image.Name; id != "" && !seen[id] {
			seen[id] = true
			imageIDs = append(imageIDs, id)
		}
	}

	annotations, err := client.GetImageAnnotations(ctx, imageIDs)
	if err != nil {
		result.err = err
		return result
	}
	result.annotations = annotations

	return result
}

// buildArchive feeds every successful region into one history builder and
// seeds the archive's annotation table with the AMI classifications
func buildArchive(results []regionResult, windowStart, windowEnd time.Time) (*report.Archive, int, error) {
	builder, err := history.NewBuilder(windowStart, windowEnd)
	if err != nil {
		return nil, 0, err
	}

	for _, result := range results {
		if result.err != nil {
			continue
		}
		for _, p := range result.placements {
			err := builder.AddInstance(p.Observation, p.Until)
			if errors.Is(err, history.ErrDuplicateInstance) {
				log.Printf("Skipping duplicate instance %s in %s", p.Observation.Instance.Name, result.region)
				continue
			}
			if err != nil {
				return nil, 0, fmt.Errorf("add instance %s: %w", p.Observation.Instance.Name, err)
			}
		}
	}

	set, err := builder.Build()
	if err != nil {
		return nil, 0, err
	}

	archive := report.NewArchive(set)
	for _, result := range results {
		for _, a := range result.annotations {
			archive.AddLicenseAnnotation(a.Image, a.OperatingSystem, a.License)
		}
	}

	return archive, set.Len(), nil
}
