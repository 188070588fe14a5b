package entity

import "math"

type serviceRate struct {
	Base        float64
	PerThousand float64
}

var serviceRates = map[ServiceType]serviceRate{
	ServiceStandard: {Base: 50, PerThousand: 10},
	ServicePremium:  {Base: 75, PerThousand: 15},
	ServiceComplete: {Base: 100, PerThousand: 20},
}

// unknown service types are charged the standard base with no size component
var fallbackRate = serviceRate{Base: 50, PerThousand: 0}

// CalculatePrice returns the price of a service for a lawn of lawnSize square
// feet, rounded to cents.
func CalculatePrice(serviceType ServiceType, lawnSize int) float64 {
	rate, ok := serviceRates[serviceType]
	if !ok {
		rate = fallbackRate
	}

	sizeFactor := float64(lawnSize) / 1000
	price := rate.Base + sizeFactor*rate.PerThousand

	return math.Round(price*100) / 100
}
