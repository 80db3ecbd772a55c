package domain

// User is the canonical shape of a stored user record.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Age       int    `json:"age"`
}

// Record keys as they appear in JSON bodies, HTML forms and the persisted document.
const (
	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPassword  = "password"
	FieldAge       = "age"
)

// RequiredFields lists the fields checked on creation, in check order.
var RequiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldPassword,
	FieldAge,
}

// UserPatch carries the fields supplied for a partial update. Nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
	Age       *int
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Password == nil && p.Age == nil
}

// Apply returns a copy of u with every supplied patch field written over it.
func (u User) Apply(p UserPatch) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	return u
}
