package licenseservice

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания неизвестна LicenseService
	ErrCompanyNotFound = errors.New("licenseservice: company not found")

	// ErrInvalidResponse возвращается при некорректном ответе LicenseService
	ErrInvalidResponse = errors.New("licenseservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности LicenseService,
	// когда применяется graceful degradation
	ErrServiceDegraded = errors.New("licenseservice: service degraded")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("licenseservice: internal error")
)
