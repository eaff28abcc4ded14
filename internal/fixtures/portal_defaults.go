package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext password of every seeded account.
const DefaultPassword = "password"

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// Repositories are the stores the seed writes through.
type Repositories struct {
	Transactor  database.Transactor
	Users       user.UserRepository
	Departments organization.DepartmentRepository
	Holidays    holiday.Repository
	Policies    policy.Repository
	Courses     learning.CourseRepository
	Modules     learning.ModuleRepository
	Progress    learning.ProgressRepository
	Activities  activity.Repository
}

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds IDs of the seeded records other fixtures refer to
type SeededDataIDs struct {
	UserIDs    map[string]int64 // username -> id
	CourseIDs  map[string]int64 // title -> id
	PolicyIDs  map[string]int64 // title -> id
	HolidayIDs []int64
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		UserIDs:   make(map[string]int64),
		CourseIDs: make(map[string]int64),
		PolicyIDs: make(map[string]int64),
	}
}

// ==========================================
// DEFAULT USERS
// ==========================================

// GetDefaultUsers returns the seeded directory. The first entry is the admin every
// other user reports to.
func GetDefaultUsers() []user.User {
	return []user.User{
		{
			Username:     "admin",
			FirstName:    "Sarah",
			LastName:     "Johnson",
			Email:        "sarah.johnson@example.com",
			Role:         user.RoleAdmin,
			Department:   "Human Resources",
			Position:     "HR Director",
			ProfileImage: strPtr("https://images.unsplash.com/photo-1494790108377-be9c29b29330?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
			Phone:        strPtr("555-123-4567"),
			Address:      strPtr("123 Main Street"),
			City:         strPtr("San Francisco"),
			Country:      strPtr("United States"),
			EmployeeCode: strPtr("EMP001"),
			HireDate:     dayPtr(2015, time.June, 1),
			Skills:       []string{"Leadership", "HR Management", "Conflict Resolution", "Recruitment", "Employee Relations"},
			Languages:    []string{"English", "Spanish"},
		},
		{
			Username:     "mark",
			FirstName:    "Mark",
			LastName:     "Wilson",
			Email:        "mark.wilson@example.com",
			Role:         user.RoleEmployee,
			Department:   "Design",
			Position:     "Lead Designer",
			ProfileImage: strPtr("https://images.unsplash.com/photo-1500648767791-00dcc994a43e?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
			Phone:        strPtr("555-987-1234"),
			Address:      strPtr("456 Market Street"),
			City:         strPtr("San Francisco"),
			Country:      strPtr("United States"),
			EmployeeCode: strPtr("EMP002"),
			HireDate:     dayPtr(2017, time.March, 15),
			Skills:       []string{"UI Design", "UX Research", "Figma", "Design Systems"},
			Languages:    []string{"English"},
		},
		{
			Username:     "emma",
			FirstName:    "Emma",
			LastName:     "Davis",
			Email:        "emma.davis@example.com",
			Role:         user.RoleEmployee,
			Department:   "Product",
			Position:     "Product Manager",
			ProfileImage: strPtr("https://images.unsplash.com/photo-1517841905240-472988babdf9?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
			Phone:        strPtr("555-456-7890"),
			Address:      strPtr("789 Pine Street"),
			City:         strPtr("San Francisco"),
			Country:      strPtr("United States"),
			EmployeeCode: strPtr("EMP003"),
			HireDate:     dayPtr(2018, time.September, 10),
			Skills:       []string{"Product Strategy", "Roadmapping", "Agile"},
			Languages:    []string{"English", "French"},
		},
		{
			Username:     "jennifer",
			FirstName:    "Jennifer",
			LastName:     "Thompson",
			Email:        "jennifer.thompson@example.com",
			Role:         user.RoleHRManager,
			Department:   "Human Resources",
			Position:     "HR Manager",
			ProfileImage: strPtr("https://images.unsplash.com/photo-1573497019940-1c28c88b4f3e?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
			Phone:        strPtr("555-234-5678"),
			Address:      strPtr("456 Cedar Avenue"),
			City:         strPtr("San Francisco"),
			Country:      strPtr("United States"),
			EmployeeCode: strPtr("EMP004"),
			HireDate:     dayPtr(2017, time.May, 20),
			Skills:       []string{"Recruitment", "Onboarding", "Employee Relations"},
			Languages:    []string{"English"},
		},
		{
			Username:     "david",
			FirstName:    "David",
			LastName:     "Chen",
			Email:        "david.chen@example.com",
			Role:         user.RoleManager,
			Department:   "Engineering",
			Position:     "Engineering Manager",
			ProfileImage: strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
			Phone:        strPtr("555-876-2345"),
			Address:      strPtr("789 Oak Street"),
			City:         strPtr("San Francisco"),
			Country:      strPtr("United States"),
			EmployeeCode: strPtr("EMP005"),
			HireDate:     dayPtr(2016, time.November, 15),
			Skills:       []string{"Go", "System Design", "Team Leadership"},
			Languages:    []string{"English", "Mandarin"},
		},
	}
}

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

type departmentDefinition struct {
	Department   organization.Department
	HeadUsername string
}

func getDefaultDepartments() []departmentDefinition {
	return []departmentDefinition{
		{organization.Department{Name: "Human Resources", Description: "Responsible for all employee-related matters"}, "admin"},
		{organization.Department{Name: "Design", Description: "Handles all design and branding for the company"}, "mark"},
		{organization.Department{Name: "Product", Description: "Oversees product development and roadmap"}, "emma"},
		{organization.Department{Name: "Engineering", Description: "Develops and maintains all software and technical infrastructure"}, "david"},
	}
}

// ==========================================
// DEFAULT HOLIDAY REQUESTS
// ==========================================

type holidayDefinition struct {
	Username string
	Start    time.Time
	End      time.Time
	Duration int
	Reason   string
	Approved bool
}

func getDefaultHolidays() []holidayDefinition {
	return []holidayDefinition{
		{"mark", day(2023, time.July, 15), day(2023, time.July, 28), 10, "Summer vacation with family", true},
		{"admin", day(2023, time.August, 2), day(2023, time.August, 9), 5, "Personal time off", true},
		{"emma", day(2023, time.July, 20), day(2023, time.July, 21), 2, "Medical appointment", false},
		{"admin", day(2023, time.December, 20), day(2023, time.December, 31), 8, "Christmas holiday", false},
		{"mark", day(2023, time.September, 15), day(2023, time.September, 22), 6, "Family wedding", false},
		{"david", day(2023, time.October, 5), day(2023, time.October, 13), 7, "Annual vacation", false},
		{"jennifer", day(2023, time.September, 25), day(2023, time.September, 29), 5, "Conference attendance", false},
	}
}

// ==========================================
// DEFAULT POLICIES
// ==========================================

func GetDefaultPolicies() []policy.Policy {
	return []policy.Policy{
		{
			Title:    "Remote Work Guidelines",
			Category: "HR & Employment",
			Content: `<h2>Remote Work Policy</h2>
<p>This policy outlines the company's guidelines for remote work arrangements.</p>
<h3>Eligibility</h3>
<p>Remote work arrangements are available to employees whose job responsibilities can be performed remotely without diminishing individual or team performance.</p>
<h3>Work Hours and Availability</h3>
<p>Remote employees are expected to be available during standard business hours, generally 9:00 AM to 5:00 PM, Monday through Friday. Any variations must be approved by the employee's manager.</p>
<h3>Communication</h3>
<p>Employees working remotely must maintain regular communication with their team members and supervisor.</p>
<h3>Equipment and Resources</h3>
<p>The company will provide necessary equipment for remote work, including a laptop computer and necessary software. Employees are responsible for securing a reliable internet connection.</p>
<h3>Security</h3>
<p>Remote workers must adhere to the company's information security policies, including using VPN when accessing company resources.</p>`,
		},
		{
			Title:    "Anti-Harassment Policy",
			Category: "HR & Employment",
			Content: `<h2>Anti-Harassment Policy</h2>
<p>The company is committed to providing a work environment free from harassment and discrimination.</p>
<h3>Definition</h3>
<p>Harassment includes unwelcome conduct based on race, color, religion, sex, national origin, age, disability, or genetic information.</p>
<h3>Reporting</h3>
<p>Employees who experience or witness harassment should report it immediately to their supervisor, department head, or HR representative.</p>
<h3>Investigation</h3>
<p>All reports of harassment will be investigated promptly and thoroughly. Confidentiality will be maintained to the extent possible.</p>
<h3>Consequences</h3>
<p>Employees found to have engaged in harassment will be subject to disciplinary action, up to and including termination of employment.</p>`,
		},
		{
			Title:    "Data Protection Policy",
			Category: "IT & Data",
			Content: `<h2>Data Protection Policy</h2>
<p>This policy outlines the company's commitment to protecting personal and confidential data.</p>
<h3>Data Collection</h3>
<p>The company collects only necessary data and informs individuals about the purpose of collection.</p>
<h3>Data Storage</h3>
<p>Personal data must be stored securely, with appropriate controls to prevent unauthorized access.</p>
<h3>Data Sharing</h3>
<p>Personal data should not be shared with third parties without explicit consent, unless required by law.</p>
<h3>Data Retention</h3>
<p>Personal data should be retained only as long as necessary for the purpose it was collected.</p>`,
		},
		{
			Title:    "Health and Safety Guidelines",
			Category: "Health & Safety",
			Content: `<h2>Health and Safety Guidelines</h2>
<p>The company is committed to providing a safe and healthy work environment for all employees.</p>
<h3>General Safety</h3>
<p>Employees must follow all safety procedures and report any unsafe conditions or practices to their supervisor.</p>
<h3>Emergency Procedures</h3>
<p>Familiarize yourself with emergency exits, assembly points, and procedures for fires, medical emergencies, and other incidents.</p>
<h3>Incident Reporting</h3>
<p>All workplace accidents, injuries, or near misses must be reported immediately to a supervisor or HR representative.</p>`,
		},
	}
}

// ==========================================
// DEFAULT COURSES
// ==========================================

// CourseDefinition pairs a course with its module titles in order
type CourseDefinition struct {
	Course  learning.Course
	Modules []string
}

func GetDefaultCourses() []CourseDefinition {
	return []CourseDefinition{
		{
			Course: learning.Course{
				Title:       "Data Security Basics",
				Description: "Learn the fundamentals of data security and protection in a corporate environment",
				Category:    "IT Security",
				ImageURL:    strPtr("https://images.unsplash.com/photo-1524178232363-1fb2b075b655?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80"),
			},
			Modules: []string{"Introduction to Data Security", "Password Management", "Phishing Awareness", "Mobile Device Security", "Data Encryption"},
		},
		{
			Course: learning.Course{
				Title:       "Leadership Fundamentals",
				Description: "Develop essential leadership skills to effectively manage teams and drive results",
				Category:    "Leadership",
				ImageURL:    strPtr("https://images.unsplash.com/photo-1552664730-d307ca884978?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80"),
			},
			Modules: []string{"Leadership Styles", "Building Effective Teams", "Conflict Resolution", "Delegation Skills", "Performance Management", "Motivating Your Team", "Strategic Planning", "Leading Change"},
		},
		{
			Course: learning.Course{
				Title:       "Effective Communication",
				Description: "Improve your communication skills to better collaborate with colleagues and clients",
				Category:    "Soft Skills",
				ImageURL:    strPtr("https://images.unsplash.com/photo-1454165804606-c3d57bc86b40?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80"),
			},
			Modules: []string{"Fundamentals of Communication", "Active Listening", "Non-Verbal Communication", "Written Communication", "Presentation Skills"},
		},
	}
}

type progressDefinition struct {
	Username         string
	CourseTitle      string
	CompletedModules int
}

func getDefaultProgress() []progressDefinition {
	return []progressDefinition{
		{"admin", "Data Security Basics", 5},
		{"admin", "Leadership Fundamentals", 8},
		{"admin", "Effective Communication", 3},
		{"mark", "Data Security Basics", 4},
		{"mark", "Effective Communication", 5},
		{"emma", "Data Security Basics", 5},
		{"emma", "Leadership Fundamentals", 3},
	}
}

// ==========================================
// SEED
// ==========================================

// Seed writes the default data set in one transaction. It does nothing when the
// store already holds users.
func Seed(ctx context.Context, repos Repositories) (*SeededDataIDs, error) {
	count, err := repos.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		slog.Info("Seed skipped, store already populated", "users", count)
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	ids := NewSeededDataIDs()
	err = repos.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := seedUsers(ctx, repos, string(hash), ids); err != nil {
			return err
		}
		for _, def := range getDefaultDepartments() {
			d := def.Department
			headID := ids.UserIDs[def.HeadUsername]
			d.HeadID = &headID
			if _, err := repos.Departments.Create(ctx, d); err != nil {
				return fmt.Errorf("create department %s: %w", d.Name, err)
			}
		}
		if err := seedHolidays(ctx, repos, ids); err != nil {
			return err
		}
		for _, p := range GetDefaultPolicies() {
			created, err := repos.Policies.Create(ctx, p)
			if err != nil {
				return fmt.Errorf("create policy %s: %w", p.Title, err)
			}
			ids.PolicyIDs[created.Title] = created.ID
		}
		if err := seedLearning(ctx, repos, ids); err != nil {
			return err
		}
		return seedActivities(ctx, repos, ids)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Seed data applied", "users", len(ids.UserIDs), "courses", len(ids.CourseIDs), "policies", len(ids.PolicyIDs))
	return ids, nil
}

func seedUsers(ctx context.Context, repos Repositories, hash string, ids *SeededDataIDs) error {
	var adminID *int64
	for _, u := range GetDefaultUsers() {
		u.PasswordHash = hash
		if adminID != nil {
			u.ManagerID = adminID
		}
		created, err := repos.Users.Create(ctx, u)
		if err != nil {
			return fmt.Errorf("create user %s: %w", u.Username, err)
		}
		ids.UserIDs[created.Username] = created.ID
		if created.Role == user.RoleAdmin && adminID == nil {
			id := created.ID
			adminID = &id
		}
	}
	return nil
}

func seedHolidays(ctx context.Context, repos Repositories, ids *SeededDataIDs) error {
	adminID := ids.UserIDs["admin"]
	for _, def := range getDefaultHolidays() {
		created, err := repos.Holidays.Create(ctx, holiday.Request{
			UserID:    ids.UserIDs[def.Username],
			StartDate: def.Start,
			EndDate:   def.End,
			Duration:  def.Duration,
			Status:    holiday.StatusPending,
			Reason:    strPtr(def.Reason),
		})
		if err != nil {
			return fmt.Errorf("create holiday request for %s: %w", def.Username, err)
		}
		if def.Approved {
			if _, err := repos.Holidays.Decide(ctx, created.ID, holiday.StatusApproved, adminID); err != nil {
				return fmt.Errorf("approve holiday request %d: %w", created.ID, err)
			}
		}
		ids.HolidayIDs = append(ids.HolidayIDs, created.ID)
	}
	return nil
}

func seedLearning(ctx context.Context, repos Repositories, ids *SeededDataIDs) error {
	for _, def := range GetDefaultCourses() {
		c := def.Course
		c.TotalModules = len(def.Modules)
		created, err := repos.Courses.Create(ctx, c)
		if err != nil {
			return fmt.Errorf("create course %s: %w", c.Title, err)
		}
		ids.CourseIDs[created.Title] = created.ID

		for i, title := range def.Modules {
			order := i + 1
			_, err := repos.Modules.Create(ctx, learning.Module{
				CourseID: created.ID,
				Title:    fmt.Sprintf("Module %d: %s", order, title),
				Content:  fmt.Sprintf("<p>Content for module %d of %s</p>", order, created.Title),
				Order:    order,
			})
			if err != nil {
				return fmt.Errorf("create module %d of %s: %w", order, created.Title, err)
			}
		}
	}

	totals := make(map[string]int)
	for _, def := range GetDefaultCourses() {
		totals[def.Course.Title] = len(def.Modules)
	}
	for _, def := range getDefaultProgress() {
		_, err := repos.Progress.Upsert(ctx, learning.Progress{
			UserID:           ids.UserIDs[def.Username],
			CourseID:         ids.CourseIDs[def.CourseTitle],
			CompletedModules: def.CompletedModules,
			IsCompleted:      def.CompletedModules == totals[def.CourseTitle],
		})
		if err != nil {
			return fmt.Errorf("create progress for %s: %w", def.Username, err)
		}
	}
	return nil
}

func seedActivities(ctx context.Context, repos Repositories, ids *SeededDataIDs) error {
	adminID := ids.UserIDs["admin"]
	// admin's approved request is the second one seeded
	adminHoliday := ids.HolidayIDs[1]

	entries := []activity.Activity{
		{
			Type:        activity.TypeCourseCompletion,
			Description: `You completed <span class="font-medium">Data Security Basics</span> course`,
			Metadata:    map[string]interface{}{"courseId": ids.CourseIDs["Data Security Basics"]},
			CreatedAt:   time.Date(2023, time.June, 21, 12, 30, 0, 0, time.UTC),
		},
		{
			Type:        activity.TypeHolidayApproved,
			Description: `Your holiday request was <span class="font-medium text-success">approved</span>`,
			Metadata:    map[string]interface{}{"holidayRequestId": adminHoliday},
			CreatedAt:   time.Date(2023, time.June, 20, 10, 15, 0, 0, time.UTC),
		},
		{
			Type:        activity.TypePolicyUpdate,
			Description: `New policy update: <span class="font-medium">Remote Work Guidelines</span>`,
			Metadata:    map[string]interface{}{"policyId": ids.PolicyIDs["Remote Work Guidelines"]},
			CreatedAt:   time.Date(2023, time.June, 19, 14, 45, 0, 0, time.UTC),
		},
		{
			Type:        activity.TypeHolidayRequest,
			Description: "You submitted a holiday request",
			Metadata:    map[string]interface{}{"holidayRequestId": adminHoliday},
			CreatedAt:   time.Date(2023, time.June, 18, 9, 20, 0, 0, time.UTC),
		},
	}
	for _, a := range entries {
		a.UserID = adminID
		if _, err := repos.Activities.Create(ctx, a); err != nil {
			return fmt.Errorf("create activity %s: %w", a.Type, err)
		}
	}
	return nil
}
