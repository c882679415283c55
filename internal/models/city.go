package models

import "fmt"

// City - неизменяемый справочник, read-only для ядра
type City struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:50;not null;index:idx_cities_name;uniqueIndex:uq_city_region"`
	Region string `gorm:"size:50;not null;uniqueIndex:uq_city_region"`
}

// FullName - отображаемое имя "Город, Регион"
func (c *City) FullName() string {
	return fmt.Sprintf("%s, %s", c.Name, c.Region)
}
