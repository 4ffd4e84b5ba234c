package cost

import "strings"

// regionPrefixes are the billing-code prefixes Cost Explorer prepends to
// usage types outside us-east-1 ("APS2-BoxUsage:t3.micro" and the like).
var regionPrefixes = []string{
	"USE1-", "USE2-", "USW1-", "USW2-", "EUW1-", "EUW2-", "EUW3-",
	"APS1-", "APS2-", "APN1-", "APN2-", "SAE1-", "CAN1-", "EUC1-",
}

// cleanUsageType turns a raw usage type into a readable display name. Types
// with no known pattern pass through with only the region prefix stripped.
func cleanUsageType(usageType, service string) string {
	cleaned := usageType
	for _, prefix := range regionPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimPrefix(cleaned, prefix)
			break
		}
	}

	switch {
	case strings.Contains(service, "Virtual Private Cloud") || strings.Contains(service, "VPC"):
		switch {
		case strings.Contains(cleaned, "NatGateway"):
			return "NAT Gateway Hours"
		case strings.Contains(cleaned, "PublicIP"):
			return "Elastic IP Addresses"
		case strings.Contains(cleaned, "VpcEndpoint"):
			return "VPC Endpoints"
		case strings.Contains(cleaned, "VPN"):
			return "VPN Connection Hours"
		}
	case strings.Contains(service, "Elastic Compute Cloud") || strings.Contains(service, "EC2"):
		switch {
		case strings.Contains(cleaned, "BoxUsage"):
			if _, instanceType, ok := strings.Cut(cleaned, ":"); ok {
				return "EC2 Instance - " + instanceType
			}
			return "EC2 Instance Hours"
		case strings.Contains(cleaned, "VolumeUsage"):
			return "EBS Volume Storage"
		case strings.Contains(cleaned, "SnapshotUsage"):
			return "EBS Snapshot Storage"
		case strings.Contains(cleaned, "EBS") && strings.Contains(cleaned, "IOPS"):
			return "EBS Provisioned IOPS"
		case strings.Contains(cleaned, "DataTransfer"):
			return "Data Transfer"
		case strings.Contains(cleaned, "LoadBalancer"):
			return "Load Balancer Hours"
		}
	case strings.Contains(service, "Relational Database Service"):
		switch {
		case strings.Contains(cleaned, "InstanceUsage"):
			if _, instanceClass, ok := strings.Cut(cleaned, ":"); ok {
				return "RDS Instance - " + instanceClass
			}
			return "RDS Instance Hours"
		case strings.Contains(cleaned, "StorageUsage"):
			return "RDS Storage"
		case strings.Contains(cleaned, "BackupUsage"):
			return "RDS Backup Storage"
		case strings.Contains(cleaned, "IOPS"):
			return "RDS Provisioned IOPS"
		}
	case strings.Contains(service, "Simple Storage Service") || strings.Contains(service, "S3"):
		switch {
		case strings.Contains(cleaned, "StorageUsage"):
			return "S3 Storage"
		case strings.Contains(cleaned, "Requests"):
			return "S3 Requests"
		case strings.Contains(cleaned, "DataTransfer"):
			return "S3 Data Transfer"
		}
	case strings.Contains(service, "Lambda"):
		switch {
		case strings.Contains(cleaned, "Request"):
			return "Lambda Requests"
		case strings.Contains(cleaned, "Duration"):
			return "Lambda Duration"
		}
	case strings.Contains(service, "ElastiCache"):
		switch {
		case strings.Contains(cleaned, "NodeUsage"):
			return "ElastiCache Node Hours"
		case strings.Contains(cleaned, "BackupUsage"):
			return "ElastiCache Backup Storage"
		}
	case strings.Contains(service, "CloudFront"):
		switch {
		case strings.Contains(cleaned, "DataTransfer"):
			return "CloudFront Data Transfer"
		case strings.Contains(cleaned, "Request"):
			return "CloudFront Requests"
		}
	}

	return cleaned
}

// usageUnit picks the unit UsageQuantity is denominated in for a usage
// type. Cost Explorer does not return one alongside the quantity.
func usageUnit(usageType, service string) string {
	lowered := strings.ToLower(usageType)
	service = strings.ToLower(service)

	switch {
	case strings.Contains(lowered, "natgateway"):
		if strings.Contains(lowered, "byte") || strings.Contains(lowered, "gb") {
			return "GB"
		}
		return "Hrs"
	case strings.Contains(lowered, "boxusage"), strings.Contains(lowered, "instanceusage"):
		return "Hrs"
	case strings.Contains(lowered, "volumeusage"), strings.Contains(lowered, "snapshotusage"):
		return "GB-Mo"
	case strings.Contains(lowered, "iops"):
		return "IOPS-Mo"
	case strings.Contains(lowered, "storageusage"):
		return "GB-Mo"
	case strings.Contains(lowered, "request") && strings.Contains(service, "lambda"):
		return "Requests"
	case strings.Contains(lowered, "duration") && strings.Contains(service, "lambda"):
		return "GB-Seconds"
	case strings.Contains(lowered, "datatransfer"):
		return "GB"
	case strings.Contains(lowered, "loadbalancer"):
		return "Hrs"
	case strings.Contains(lowered, "request"):
		return "Requests"
	default:
		return "Units"
	}
}
