package geolite

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
)

// cityDatabaseTypes City 조회를 지원하는 데이터베이스 유형
var cityDatabaseTypes = map[string]bool{
	"DBIP-City-Lite":              true,
	"DBIP-Location (compat=City)": true,
	"GeoLite2-City":               true,
	"GeoIP2-City":                 true,
	"GeoIP2-City-Asia-Pacific":    true,
	"GeoIP2-City-Europe":          true,
	"GeoIP2-City-North-America":   true,
	"GeoIP2-City-South-America":   true,
	"GeoIP2-Precision-City":       true,
	"GeoIP2-Enterprise":           true,
}

// UnknownDatabaseTypeError City 조회를 지원하지 않는 데이터베이스일 때 반환됩니다
type UnknownDatabaseTypeError struct {
	DatabaseType string
}

func (e UnknownDatabaseTypeError) Error() string {
	return fmt.Sprintf(`geolite: reader does not support the %q database type`, e.DatabaseType)
}

// InvalidIPError IP 문자열을 해석할 수 없을 때 반환됩니다
type InvalidIPError struct {
	IP string
}

func (e InvalidIPError) Error() string {
	return fmt.Sprintf("geolite: invalid ip address %q", e.IP)
}

// Resolver maxminddb City 데이터베이스로 IP 위치를 조회합니다
type Resolver struct {
	mu         sync.RWMutex
	mmdbReader *maxminddb.Reader
}

// Open 데이터베이스 파일을 메모리 맵으로 엽니다. Close로 리소스를 반환해야 합니다.
func Open(file string) (*Resolver, error) {
	reader, err := maxminddb.Open(file)
	if err != nil {
		return nil, err
	}
	return newResolver(reader)
}

// FromBytes 메모리에 올린 데이터베이스로 Resolver를 생성합니다
func FromBytes(bytes []byte) (*Resolver, error) {
	reader, err := maxminddb.FromBytes(bytes)
	if err != nil {
		return nil, err
	}
	return newResolver(reader)
}

func newResolver(reader *maxminddb.Reader) (*Resolver, error) {
	if !cityDatabaseTypes[reader.Metadata.DatabaseType] {
		reader.Close()
		return nil, UnknownDatabaseTypeError{reader.Metadata.DatabaseType}
	}
	return &Resolver{mmdbReader: reader}, nil
}

// City IP 주소의 City 레코드를 조회합니다
func (r *Resolver) City(ipAddress net.IP) (*City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var city City
	err := r.mmdbReader.Lookup(ipAddress, &city)
	return &city, err
}

// Resolve IP 문자열을 위치 정보로 변환합니다. 데이터베이스에 없는 IP는 빈 위치를 반환합니다.
func (r *Resolver) Resolve(ip string) (entity.GeoLocation, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return entity.GeoLocation{}, InvalidIPError{IP: ip}
	}

	city, err := r.City(parsed)
	if err != nil {
		return entity.GeoLocation{}, err
	}
	return ToLocation(city), nil
}

// Close 리더 리소스를 해제합니다
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mmdbReader.Close()
}

// ToLocation City 레코드를 도메인 위치로 변환합니다
func ToLocation(city *City) entity.GeoLocation {
	loc := entity.GeoLocation{
		Country: city.Country.IsoCode,
		City:    city.City.Names["en"],
	}
	if len(city.Subdivisions) > 0 {
		loc.Region = city.Subdivisions[0].IsoCode
	}
	if city.hasCoordinates() {
		lat, lon := city.Location.Latitude, city.Location.Longitude
		loc.Latitude = &lat
		loc.Longitude = &lon
	}
	return loc
}

var _ repository.GeoResolver = (*Resolver)(nil)
