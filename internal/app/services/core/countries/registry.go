package countries

import (
	"appointment-service/internal/app/contracts"
	"sort"
	"strings"
	"sync"
)

type registry struct {
	mu       sync.RWMutex
	usecases map[string]contracts.CountryBookingUsecase
}

func NewRegistry() contracts.CountryBookingRegistry {
	return &registry{usecases: map[string]contracts.CountryBookingUsecase{}}
}

// Register replaces any usecase already bound to the same country.
func (r *registry) Register(usecase contracts.CountryBookingUsecase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usecases[strings.ToUpper(usecase.CountryCode())] = usecase
}

func (r *registry) Lookup(countryCode string) (contracts.CountryBookingUsecase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	usecase, ok := r.usecases[strings.ToUpper(countryCode)]
	return usecase, ok
}

func (r *registry) CountryCodes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.usecases))
	for code := range r.usecases {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
