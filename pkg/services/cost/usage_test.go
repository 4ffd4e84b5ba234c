package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanUsageType(t *testing.T) {
	tests := []struct {
		name      string
		usageType string
		service   string
		expected  string
	}{
		{
			name:      "region prefix stripped from instance type",
			usageType: "APS2-BoxUsage:t3.micro",
			service:   "Amazon Elastic Compute Cloud - Compute",
			expected:  "EC2 Instance - t3.micro",
		},
		{
			name:      "nat gateway hours",
			usageType: "USE1-NatGateway-Hours",
			service:   "Amazon Virtual Private Cloud",
			expected:  "NAT Gateway Hours",
		},
		{
			name:      "vpc endpoint",
			usageType: "VpcEndpoint-Hours",
			service:   "Amazon Virtual Private Cloud",
			expected:  "VPC Endpoints",
		},
		{
			name:      "rds instance class",
			usageType: "EUW1-InstanceUsage:db.t3.micro",
			service:   "Amazon Relational Database Service",
			expected:  "RDS Instance - db.t3.micro",
		},
		{
			name:      "s3 storage",
			usageType: "TimedStorage-ByteHrs-StorageUsage",
			service:   "Amazon Simple Storage Service",
			expected:  "S3 Storage",
		},
		{
			name:      "lambda duration",
			usageType: "Lambda-GB-Second-Duration",
			service:   "AWS Lambda",
			expected:  "Lambda Duration",
		},
		{
			name:      "unknown type passes through without prefix",
			usageType: "APN1-SomethingNew",
			service:   "Some Future Service",
			expected:  "SomethingNew",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanUsageType(tt.usageType, tt.service))
		})
	}
}

func TestUsageUnit(t *testing.T) {
	tests := []struct {
		name      string
		usageType string
		service   string
		expected  string
	}{
		{"instance hours", "BoxUsage:t3.micro", "Amazon Elastic Compute Cloud - Compute", "Hrs"},
		{"volume storage", "EBS:VolumeUsage.gp3", "Amazon Elastic Compute Cloud - Compute", "GB-Mo"},
		{"nat gateway bytes", "NatGateway-Bytes", "Amazon Virtual Private Cloud", "GB"},
		{"nat gateway hours", "NatGateway-Hours", "Amazon Virtual Private Cloud", "Hrs"},
		{"lambda duration", "Lambda-GB-Second-Duration", "AWS Lambda", "GB-Seconds"},
		{"lambda requests", "Request", "AWS Lambda", "Requests"},
		{"data transfer", "DataTransfer-Out-Bytes", "Amazon CloudFront", "GB"},
		{"unknown", "Mystery-Usage", "Some Service", "Units"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usageUnit(tt.usageType, tt.service))
		})
	}
}
