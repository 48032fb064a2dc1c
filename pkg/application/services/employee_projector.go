package services

import (
	"employee-microservice-go/pkg/domain/entities"
)

// projectEmployee aplana un agregado de empleado a la forma externa.
// La persona es obligatoria por invariante; usuario, roles y vacunas
// son ramas opcionales. Las listas quedan en nil (null en el wire)
// cuando no hay filas, nunca en slice vacío.
func projectEmployee(employee *entities.Employee) *EmployeeResponse {
	response := &EmployeeResponse{
		ID:                employee.ID,
		Email:             employee.Email,
		BirthDate:         employee.BirthDate,
		HomeAddress:       employee.HomeAddress,
		MobilePhone:       employee.MobilePhone,
		VaccinationStatus: employee.VaccinationStatus,
		Status:            employee.Status.Label(),
	}

	if employee.Person != nil {
		response.DNI = employee.Person.DNI
		response.FirstName = employee.Person.FirstName
		response.LastName = employee.Person.LastName
	}

	if employee.User != nil {
		response.Username = &employee.User.Username
		response.Password = &employee.User.Password

		for _, userRole := range employee.User.UserRoles {
			if userRole.Role == nil {
				continue
			}
			response.Roles = append(response.Roles, &RoleResponse{
				ID:   userRole.Role.ID,
				Name: userRole.Role.Name,
			})
		}
	}

	for _, vaccination := range employee.Vaccinations {
		entry := &EmployeeVaccineResponse{
			DoseNumber:            vaccination.DoseNumber,
			VaccinationDate:       vaccination.VaccinationDate,
			EmployeeVaccinationID: vaccination.ID,
		}
		if vaccination.Vaccine != nil {
			entry.ID = vaccination.Vaccine.ID
			entry.Name = vaccination.Vaccine.VaccineType
		}
		response.Vaccines = append(response.Vaccines, entry)
	}

	return response
}

// projectCreatedEmployee es la variante del alta: mismos escalares, con
// las credenciales iniciales y el nombre del rol asignado en lugar de
// la lista de roles.
func projectCreatedEmployee(employee *entities.Employee, person *entities.Person, user *entities.User, roleName string) *CreateEmployeeResponse {
	return &CreateEmployeeResponse{
		ID:                employee.ID,
		DNI:               person.DNI,
		FirstName:         person.FirstName,
		LastName:          person.LastName,
		Email:             employee.Email,
		BirthDate:         employee.BirthDate,
		HomeAddress:       employee.HomeAddress,
		MobilePhone:       employee.MobilePhone,
		VaccinationStatus: employee.VaccinationStatus,
		Status:            employee.Status.Label(),
		Username:          user.Username,
		Password:          user.Password,
		Role:              roleName,
	}
}
