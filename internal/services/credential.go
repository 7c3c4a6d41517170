package services

import (
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	// Standard Azurite account name and key
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// isLocal reports whether the service URL points at a local emulator
// (plain http) rather than an Azure endpoint.
func isLocal(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

// newDefaultAzureCredential creates the managed identity / developer credential chain.
func newDefaultAzureCredential(service string) (azcore.TokenCredential, error) {
	slog.Info("using default Azure credentials", "service", service)
	return azidentity.NewDefaultAzureCredential(nil)
}
