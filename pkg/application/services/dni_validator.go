package services

// isValidDNI aplica la regla de formato del documento: exactamente
// ocho dígitos. La política de validación es externa al dominio; un
// dni que no cumple el formato se rechaza en el alta y se descarta en
// silencio en la actualización.
func isValidDNI(dni int64) bool {
	return dni >= 10000000 && dni <= 99999999
}
