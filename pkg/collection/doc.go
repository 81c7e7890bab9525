// Package collection keeps the local, ordered copy of the users collection in
// step with the users service.
//
// A Store owns the sequence of records and the operation status. Each
// operation goes through the same cycle:
//
//	Begin (Idle -> Busy)
//	call the users service
//	success: apply the result to the sequence, Idle
//	failure: record a message in LastError, leave the sequence alone, Idle
//
// Refresh never returns an error; callers read Status. Add, Replace and
// Remove also return the failure so a caller can keep its form open.
//
// Only one operation runs at a time. A call made while another is in flight
// returns opstate.ErrBusy without side effects.
//
// Usage:
//
//	store := collection.New(remote.New("http://localhost:8080/api/users"))
//	store.Refresh(ctx)
//	if st := store.Status(); st.HasError() {
//	    fmt.Println(st.LastError)
//	}
//	rec, err := store.Add(ctx, record.UserInput{FullName: "Ana", Email: "a@x.com", Phone: "+1"})
package collection
