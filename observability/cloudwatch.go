// file: observability/cloudwatch.go
package observability

import (
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"english-hub/logger"
)

// Namespace for all club hub metrics
const metricsNamespace = "EnglishHub"

var (
	cwMu     sync.RWMutex
	cwClient cloudwatchiface.CloudWatchAPI
)

// EnableCloudWatch mirrors metrics to CloudWatch using the default AWS credential chain.
func EnableCloudWatch() error {
	sess, err := session.NewSession()
	if err != nil {
		return err
	}
	SetCloudWatchClient(cloudwatch.New(sess))
	return nil
}

// SetCloudWatchClient installs (or, with nil, removes) the CloudWatch client.
func SetCloudWatchClient(client cloudwatchiface.CloudWatchAPI) {
	cwMu.Lock()
	defer cwMu.Unlock()
	cwClient = client
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func publish(metricName string, value float64, unit string, clubID string) {
	cwMu.RLock()
	client := cwClient
	cwMu.RUnlock()
	if client == nil {
		return
	}

	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(metricName),
		Timestamp:  aws.Time(time.Now()),
		Value:      aws.Float64(value),
		Unit:       aws.String(unit),
	}
	if clubID != "" {
		datum.Dimensions = []*cloudwatch.Dimension{
			{
				Name:  aws.String("ClubID"),
				Value: aws.String(clubID),
			},
		}
	}

	_, err := client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{datum},
	})
	if err != nil {
		logger.Error.Printf("[publish] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
