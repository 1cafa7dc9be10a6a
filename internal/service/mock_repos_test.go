package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/config"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/ranking"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	user.UserID = m.nextID
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[int64]*model.Semester
	nextID    int64
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[int64]*model.Semester)}
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id int64) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetByKey(_ context.Context, term model.Term, year int) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.Term == term && s.Year == year {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	result := make([]model.Semester, 0, len(m.semesters))
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Term < result[j].Term
	})
	return result, nil
}

func (m *mockSemesterRepo) FirstOrCreate(ctx context.Context, term model.Term, year int) (*model.Semester, error) {
	if s, err := m.GetByKey(ctx, term, year); err == nil {
		return s, nil
	}
	m.nextID++
	m.semesters[m.nextID] = &model.Semester{SemesterID: m.nextID, Term: term, Year: year}
	return m.GetByID(ctx, m.nextID)
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses     map[int64]*model.Course
	assignments *mockAssignmentRepo
	nextID      int64
}

func newMockCourseRepo(assignments *mockAssignmentRepo) *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*model.Course), assignments: assignments}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.nextID++
	course.CourseID = m.nextID
	cp := *course
	m.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByUserAndSemester(_ context.Context, userID, semesterID int64) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.UserID == userID && c.SemesterID == semesterID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Code != result[j].Code {
			return result[i].Code < result[j].Code
		}
		return result[i].CourseID < result[j].CourseID
	})
	return result, nil
}

func (m *mockCourseRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Course, error) {
	var result []model.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	c, ok := m.courses[course.CourseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Code = course.Code
	c.Name = course.Name
	c.ColorHex = course.ColorHex
	return nil
}

func (m *mockCourseRepo) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for aid, a := range m.assignments.assignments {
		if a.CourseID == id {
			delete(m.assignments.assignments, aid)
		}
	}
	delete(m.courses, id)
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[int64]*model.Assignment
	courses     *mockCourseRepo
	nextID      int64
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[int64]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if _, ok := m.courses.courses[a.CourseID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	m.nextID++
	a.AssignmentID = m.nextID
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id int64) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, courseID int64) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	sortByDue(result)
	return result, nil
}

func (m *mockAssignmentRepo) ListUpcoming(_ context.Context, userID, semesterID int64) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		c, ok := m.courses.courses[a.CourseID]
		if !ok || c.UserID != userID || c.SemesterID != semesterID {
			continue
		}
		result = append(result, *a)
	}
	sortByDue(result)
	return result, nil
}

func (m *mockAssignmentRepo) CountByCourse(_ context.Context, courseID int64) (int64, error) {
	var n int64
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	if _, ok := m.assignments[a.AssignmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

func sortByDue(list []model.Assignment) {
	sort.Slice(list, func(i, j int) bool { return ranking.Sooner(&list[i], &list[j]) })
}

// ── 测试环境 ──

type testEnv struct {
	repo        *repository.Repository
	users       *mockUserRepo
	semesters   *mockSemesterRepo
	courses     *mockCourseRepo
	assignments *mockAssignmentRepo
}

func newTestEnv() *testEnv {
	assignments := newMockAssignmentRepo()
	courses := newMockCourseRepo(assignments)
	assignments.courses = courses

	env := &testEnv{
		users:       newMockUserRepo(),
		semesters:   newMockSemesterRepo(),
		courses:     courses,
		assignments: assignments,
	}
	env.repo = &repository.Repository{
		User:       env.users,
		Semester:   env.semesters,
		Course:     env.courses,
		Assignment: env.assignments,
	}
	return env
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: 15 * time.Minute,
			BcryptCost:     4,
		},
		Upcoming: config.UpcomingConfig{Limit: 10},
	}
}

// seedSemester 直接写入学期，返回 ID
func (e *testEnv) seedSemester(term model.Term, year int) int64 {
	s, _ := e.semesters.FirstOrCreate(context.Background(), term, year)
	return s.SemesterID
}

// seedCourse 直接写入课程，返回 ID
func (e *testEnv) seedCourse(userID, semesterID int64, code string) int64 {
	c := &model.Course{UserID: userID, SemesterID: semesterID, Code: code, Name: code, ColorHex: model.DefaultCourseColor}
	_ = e.courses.Create(context.Background(), c)
	return c.CourseID
}

// seedAssignment 直接写入作业，返回 ID
func (e *testEnv) seedAssignment(courseID int64, title string, due time.Time) int64 {
	a := &model.Assignment{CourseID: courseID, Type: model.AssignmentHW, Title: title, DueAt: model.NewUnixTime(due)}
	_ = e.assignments.Create(context.Background(), a)
	return a.AssignmentID
}
