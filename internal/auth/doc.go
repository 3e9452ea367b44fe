// Package auth provides authentication and authorization for the application.
//
// Authentication is local: email and password checked against the database
// with bcrypt hashing. A successful login creates a server-side session keyed
// by a random session ID carried in a cookie.
//
// Authorization is course scoped. A user's global role decides whether they
// are an administrator; everything else is decided by the role their course
// membership carries. Faculty manage the courses they teach, students see the
// courses and projects they belong to.
//
// The Service type answers the authorization questions:
//   - IsAdmin: global administrator check
//   - HasCourseRole: membership in a course with at least the given role
//   - IsCourseMember: any membership in a course
//   - IsProjectMember: membership in a project's team
//
// Fiber middleware wraps these for route protection:
//   - RequireAuth: valid session
//   - RequireAdmin: global administrator
//   - RequireCourseRole: course role from the :courseID route parameter
package auth
