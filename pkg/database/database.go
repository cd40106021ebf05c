package database

import (
	"fmt"
	"log"

	"advising_backend/internal/config"
	"advising_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate only when asked to via -migrate.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.Course{},
		&model.ProfessorCourseAssignment{},
		&model.CourseEnrollment{},
		&model.CourseSyllabus{},
		&model.CourseGrade{},
		&model.GradeComponent{},
		&model.AIInsight{},
		&model.CourseRemark{},
		&model.AdvisingSession{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a starter catalog so a fresh install has something to recommend.
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		defaultCourses := []model.Course{
			{CourseCode: "CS101", CourseName: "Introduction to Computer Science", Department: "Computer Science", Level: model.LevelFreshman, Credits: 3, Prerequisites: model.StringList{}, Description: "Basics of programming and computer science", IsActive: true},
			{CourseCode: "CS201", CourseName: "Data Structures", Department: "Computer Science", Level: model.LevelSophomore, Credits: 4, Prerequisites: model.StringList{"CS101"}, Description: "Arrays, lists, trees and their trade-offs", IsActive: true},
			{CourseCode: "CS301", CourseName: "Algorithms", Department: "Computer Science", Level: model.LevelJunior, Credits: 4, Prerequisites: model.StringList{"CS201"}, Description: "Design and analysis of algorithms", IsActive: true},
			{CourseCode: "MATH101", CourseName: "College Algebra", Department: "Mathematics", Level: model.LevelFreshman, Credits: 3, Prerequisites: model.StringList{}, Description: "Foundational algebra for STEM majors", IsActive: true},
		}
		for _, c := range defaultCourses {
			db.Create(&c)
		}
	}

	return db, nil
}
