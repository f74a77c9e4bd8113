package aws

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/fleetreport/internal/models"
	"github.com/younsl/fleetreport/pkg/utils"
)

// EC2API is the subset of the EC2 client used by FleetClient
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
}

// FleetClient reads the instance inventory of one region
type FleetClient struct {
	client EC2API
	region string
}

// Placement is an instance observation together with the end of its
// existence interval inside the window
type Placement struct {
	Observation models.InstanceObservation
	Until       time.Time
}

// NewFleetClient creates a FleetClient using the default credential chain
func NewFleetClient(ctx context.Context, region string) (*FleetClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return NewFleetClientFromAPI(ec2.NewFromConfig(cfg), region), nil
}

// NewFleetClientFromAPI wraps an existing EC2 API implementation
func NewFleetClientFromAPI(api EC2API, region string) *FleetClient {
	return &FleetClient{
		client: api,
		region: region,
	}
}

// GetPlacements returns every instance that existed during [windowStart, windowEnd),
// with its interval clipped to the window
func (c *FleetClient) GetPlacements(ctx context.Context, windowStart, windowEnd time.Time) ([]Placement, error) {
	input := &ec2.DescribeInstancesInput{
		MaxResults: aws.Int32(1000),
	}

	var placements []Placement
	paginator := ec2.NewDescribeInstancesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances in %s: %w", c.region, err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				p, ok := c.toPlacement(instance, windowStart, windowEnd)
				if ok {
					placements = append(placements, p)
				}
			}
		}
	}

	return placements, nil
}

func (c *FleetClient) toPlacement(instance types.Instance, windowStart, windowEnd time.Time) (Placement, bool) {
	if instance.InstanceId == nil || instance.LaunchTime == nil {
		return Placement{}, false
	}

	from := utils.MaxTime(*instance.LaunchTime, windowStart)
	until := windowEnd

	state := InstanceStateFromEC2(instance.State)
	if state != models.InstanceStateRunning {
		// Stopped and terminated instances carry the transition time in the reason text
		if stoppedAt := utils.ParseStateTransitionTime(utils.SafeDeref(instance.StateTransitionReason)); stoppedAt != nil {
			until = utils.MinTime(*stoppedAt, windowEnd)
		}
	}

	if !from.Before(until) {
		return Placement{}, false
	}

	zone := ""
	tenancy := models.TenancyFleet
	if instance.Placement != nil {
		zone = utils.SafeDeref(instance.Placement.AvailabilityZone)
		tenancy = TenancyFromPlacement(instance.Placement)
	}

	id := utils.SafeDeref(instance.InstanceId)
	return Placement{
		Observation: models.InstanceObservation{
			InstanceID: NumericInstanceID(id),
			Instance: models.InstanceLocator{
				Project: c.region,
				Zone:    zone,
				Name:    utils.GetName(instance.Tags, id),
			},
			Image: models.ImageLocator{
				Project: c.region,
				Name:    utils.SafeDeref(instance.ImageId),
			},
			State:      state,
			ObservedAt: from,
			Tenancy:    tenancy,
		},
		Until: until,
	}, true
}

// GetImageAnnotations classifies the given AMIs. Images that can no longer be
// described (deregistered or not shared) are skipped.
func (c *FleetClient) GetImageAnnotations(ctx context.Context, imageIDs []string) ([]models.LicenseAnnotation, error) {
	var annotations []models.LicenseAnnotation

	for start := 0; start < len(imageIDs); start += describeImagesBatchSize {
		end := min(start+describeImagesBatchSize, len(imageIDs))

		result, err := c.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
			ImageIds: imageIDs[start:end],
		})
		if err != nil {
			log.Printf("Error describing images in %s: %v. Images will be reported as unknown.", c.region, err)
			continue
		}

		for _, image := range result.Images {
			osType, license := ClassifyImage(image)
			annotations = append(annotations, models.LicenseAnnotation{
				Image: models.ImageLocator{
					Project: c.region,
					Name:    utils.SafeDeref(image.ImageId),
				},
				OperatingSystem: osType,
				License:         license,
			})
		}
	}

	return annotations, nil
}

const describeImagesBatchSize = 100

// TenancyFromPlacement maps EC2 tenancy to the report's tenancy classes.
// Dedicated instances and instances on dedicated hosts are sole-tenant.
func TenancyFromPlacement(p *types.Placement) models.Tenancy {
	switch p.Tenancy {
	case types.TenancyDedicated, types.TenancyHost:
		return models.TenancySoleTenant
	}
	if p.HostId != nil && *p.HostId != "" {
		return models.TenancySoleTenant
	}
	return models.TenancyFleet
}

// InstanceStateFromEC2 maps the EC2 state name
func InstanceStateFromEC2(state *types.InstanceState) models.InstanceState {
	if state == nil {
		return models.InstanceStateUnknown
	}
	switch state.Name {
	case types.InstanceStateNamePending, types.InstanceStateNameRunning:
		return models.InstanceStateRunning
	case types.InstanceStateNameStopping, types.InstanceStateNameStopped:
		return models.InstanceStateStopped
	case types.InstanceStateNameShuttingDown, types.InstanceStateNameTerminated:
		return models.InstanceStateTerminated
	default:
		return models.InstanceStateUnknown
	}
}

// Billing codes reported in an image's UsageOperation
const (
	usageOperationLinux          = "RunInstances"
	usageOperationWindows        = "RunInstances:0002"
	usageOperationWindowsBYOL    = "RunInstances:0800"
	platformDetailsWindowsPrefix = "Windows"
	platformDetailsLinuxPrefix   = "Linux"
)

// ClassifyImage derives OS and license type from AMI billing metadata.
// License-included Windows is reported as SPLA.
func ClassifyImage(image types.Image) (models.OperatingSystemType, models.LicenseType) {
	usage := utils.SafeDeref(image.UsageOperation)
	details := utils.SafeDeref(image.PlatformDetails)

	switch {
	case usage == usageOperationWindowsBYOL:
		return models.OperatingSystemWindows, models.LicenseByol
	case usage == usageOperationWindows:
		return models.OperatingSystemWindows, models.LicenseSpla
	case image.Platform == types.PlatformValuesWindows,
		strings.HasPrefix(details, platformDetailsWindowsPrefix):
		return models.OperatingSystemWindows, models.LicenseUnknown
	case usage == usageOperationLinux,
		strings.HasPrefix(details, platformDetailsLinuxPrefix):
		return models.OperatingSystemLinux, models.LicenseUnknown
	default:
		return models.OperatingSystemUnknown, models.LicenseUnknown
	}
}

// NumericInstanceID converts an EC2 instance ID such as "i-0abc123" to the
// numeric identifier used by the history builder
func NumericInstanceID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
