package formatter_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/annotation"
	"github.com/younsl/fleetreport/pkg/formatter"
	"github.com/younsl/fleetreport/pkg/report"
)

var baseline = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPrintInstancesTable(t *testing.T) {
	table := annotation.NewTable()
	img := models.ImageLocator{Project: "us-east-1", Name: "ami-1"}
	table.AddLicenseAnnotation(img, models.OperatingSystemWindows, models.LicenseByol)

	instances := []models.InstanceHistory{
		{
			InstanceID: 1,
			Instance:   models.InstanceLocator{Project: "us-east-1", Zone: "us-east-1a", Name: "web-1"},
			Image:      img,
			State:      models.InstanceStateRunning,
			Tenancy:    models.TenancySoleTenant,
			ObservedAt: baseline,
			From:       baseline,
			To:         baseline.AddDate(0, 0, 3),
		},
	}

	var buf bytes.Buffer
	formatter.PrintInstancesTable(&buf, instances, table)
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "web-1")
	assert.Contains(t, out, "SoleTenant")
	assert.Contains(t, out, "windows")
	assert.Contains(t, out, "byol")
	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "1 instances")
}

func TestPrintInstancesTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatter.PrintInstancesTable(&buf, nil, annotation.NewTable())
	assert.Equal(t, "No instances match the current filter.\n", buf.String())
}

func TestPrintHistogram(t *testing.T) {
	var buf bytes.Buffer
	formatter.PrintHistogram(&buf, []models.DataPoint{
		{Timestamp: baseline, Value: 4},
		{Timestamp: baseline.AddDate(0, 0, 1), Value: 1200},
	})
	out := buf.String()

	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "2020-01-02")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, strings.Repeat("█", 40))
}

func TestPrintHistogram_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatter.PrintHistogram(&buf, nil)
	assert.Equal(t, "No instances to chart.\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	s := report.Summary{
		Total:     3,
		ByTenancy: map[models.Tenancy]int{models.TenancyFleet: 2, models.TenancySoleTenant: 1},
		ByOS:      map[models.OperatingSystemType]int{models.OperatingSystemWindows: 3},
		ByLicense: map[models.LicenseType]int{models.LicenseSpla: 3},
		PeakDay:   baseline,
		PeakCount: 3,
	}

	var buf bytes.Buffer
	formatter.PrintSummary(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "## Instance Summary")
	assert.Contains(t, out, "Fleet")
	assert.Contains(t, out, "spla")
	assert.Contains(t, out, "Peak: 3 instances on 2020-01-01")

	buf.Reset()
	formatter.PrintSummary(&buf, report.Summary{})
	assert.Empty(t, buf.String())
}
