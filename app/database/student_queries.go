package database

import (
	"database/sql"
	"fmt"

	"github.com/Sourabh6826/school-erp/app/models"
)

// StudentFilters represents filtering options for students.
type StudentFilters struct {
	Search       string
	StudentClass string
	Status       string
	Limit        int
	Offset       int
}

const studentColumns = `id, student_id, name, student_class, status, contact_number,
	address, enrollment_date, has_transport, transport_fee_head_id, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.StudentID, &s.Name, &s.StudentClass, &s.Status, &s.ContactNumber,
		&s.Address, &s.EnrollmentDate, &s.HasTransport, &s.TransportFeeHead,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudents returns students matching the filters, ordered by student code.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR student_id ILIKE $%d)`, len(args), len(args))
	}
	if filters.StudentClass != "" {
		args = append(args, filters.StudentClass)
		query += fmt.Sprintf(` AND student_class = $%d`, len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	query += ` ORDER BY student_id`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		args = append(args, filters.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			continue
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	return scanStudent(db.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	if s.Status == "" {
		s.Status = models.StatusActive
	}
	return db.QueryRow(`
		INSERT INTO students (student_id, name, student_class, status, contact_number,
			address, enrollment_date, has_transport, transport_fee_head_id)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, '0001-01-01')::date, CURRENT_DATE), $8, $9)
		RETURNING id, enrollment_date, created_at, updated_at
	`, s.StudentID, s.Name, s.StudentClass, s.Status, s.ContactNumber,
		s.Address, s.EnrollmentDate.Format("2006-01-02"), s.HasTransport, s.TransportFeeHead,
	).Scan(&s.ID, &s.EnrollmentDate, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	result, err := db.Exec(`
		UPDATE students
		SET student_id = $1, name = $2, student_class = $3, status = $4,
			contact_number = $5, address = $6, has_transport = $7,
			transport_fee_head_id = $8, updated_at = NOW()
		WHERE id = $9
	`, s.StudentID, s.Name, s.StudentClass, s.Status,
		s.ContactNumber, s.Address, s.HasTransport, s.TransportFeeHead, s.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
