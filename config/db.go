package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Dialector membuat gorm dialector sesuai DB_DRIVER untuk database dbName
func Dialector(dbName string) (gorm.Dialector, error) {
	switch DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			DBHost, DBUser, DBPassword, dbName, DBPort)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort, dbName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			DBUser, DBPassword, DBHost, DBPort, dbName)
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", DBDriver)
	}
}

// ServerDialector terhubung ke server tanpa database aplikasi, dipakai untuk CREATE DATABASE
func ServerDialector() (gorm.Dialector, error) {
	switch DBDriver {
	case "postgres":
		return Dialector("postgres")
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort)
		return mysql.Open(dsn), nil
	case "mssql":
		return Dialector("master")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", DBDriver)
	}
}
