package importer

import "time"

// gorm models mapped onto the service's migration schema. The importer
// writes the same tables that the sqlite store reads; it never creates its
// own schema beyond AutoMigrate for a fresh target database.

type Artisan struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Region      string    `gorm:"column:region;not null;default:''"`
	Departement string    `gorm:"column:departement;not null;default:''"`
	Commune     string    `gorm:"column:commune;not null;default:''"`
	Quartier    string    `gorm:"column:quartier;not null;default:''"`
	Filiere     string    `gorm:"column:filiere;not null;default:''"`
	Metier      string    `gorm:"column:metier;not null;default:''"`
	Nom         string    `gorm:"column:nom;not null;default:''"`
	Prenom      string    `gorm:"column:prenom;not null;default:''"`
	Telephone   string    `gorm:"column:telephone;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Artisan) TableName() string { return "artisans" }

type Region struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (Region) TableName() string { return "regions" }

type Departement struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name   string `gorm:"column:name;uniqueIndex:idx_departements_name_region"`
	Region string `gorm:"column:region;uniqueIndex:idx_departements_name_region"`
}

func (Departement) TableName() string { return "departements" }

type Commune struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;uniqueIndex:idx_communes_name_parents"`
	Departement string `gorm:"column:departement;uniqueIndex:idx_communes_name_parents"`
	Region      string `gorm:"column:region;uniqueIndex:idx_communes_name_parents"`
}

func (Commune) TableName() string { return "communes" }

type Quartier struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;uniqueIndex:idx_quartiers_name_parents"`
	Commune     string `gorm:"column:commune;uniqueIndex:idx_quartiers_name_parents"`
	Departement string `gorm:"column:departement;uniqueIndex:idx_quartiers_name_parents"`
	Region      string `gorm:"column:region;uniqueIndex:idx_quartiers_name_parents"`
}

func (Quartier) TableName() string { return "quartiers" }

type Filiere struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (Filiere) TableName() string { return "filieres" }

type Metier struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;uniqueIndex:idx_metiers_name_filiere"`
	Filiere string `gorm:"column:filiere;uniqueIndex:idx_metiers_name_filiere"`
}

func (Metier) TableName() string { return "metiers" }
