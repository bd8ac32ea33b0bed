package cache

import (
	"fmt"
	"strings"
)

// cache key for the exchange-rate set published by a provider.
func ExchangeRatesKey(provider string) string {
	return fmt.Sprintf("exchange_rates:%s", strings.ToLower(provider))
}

// throttle key for import requests from one client.
func ImportThrottleKey(client string) string {
	return fmt.Sprintf("import-rate:%s", client)
}
