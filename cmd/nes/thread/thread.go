package thread

import (
    "sync"
    "context"
    "errors"
)

/* goroutines that share one quit context, usually the cpu driver plus the
 * monitor and viewer that present it. Wait returns once every spawned
 * function has returned
 */
type ThreadGroup struct {
    wait sync.WaitGroup
    quit context.Context
    cancel context.CancelFunc

    lock sync.Mutex
    err error
}

type ThreadFuncCancel func(quit context.Context, cancel context.CancelFunc)
type ThreadFuncError func(quit context.Context) error
type ThreadFunc func()

func NewThreadGroup(parent context.Context) *ThreadGroup {
    quit, cancel := context.WithCancel(parent)
    return &ThreadGroup{
        quit: quit,
        cancel: cancel,
    }
}

/* f gets the group's context and can stop every other thread in the group
 * by calling cancel
 */
func (group *ThreadGroup) SpawnWithCancel(f ThreadFuncCancel){
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f(group.quit, group.cancel)
    }()
}

/* when f returns the whole group is stopped. The first error that is not
 * a plain cancellation is kept for Err
 */
func (group *ThreadGroup) SpawnStopper(f ThreadFuncError){
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        defer group.cancel()
        group.setError(f(group.quit))
    }()
}

func (group *ThreadGroup) setError(err error){
    if err == nil || errors.Is(err, context.Canceled) {
        return
    }

    group.lock.Lock()
    defer group.lock.Unlock()
    if group.err == nil {
        group.err = err
    }
}

func (group *ThreadGroup) Err() error {
    group.lock.Lock()
    defer group.lock.Unlock()
    return group.err
}

func (group *ThreadGroup) Spawn(f ThreadFunc) {
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        f()
    }()
}

func (group *ThreadGroup) Cancel(){
    group.cancel()
}

func (group *ThreadGroup) Context() context.Context {
    return group.quit
}

func (group *ThreadGroup) Done() <-chan struct{} {
    return group.quit.Done()
}

func (group *ThreadGroup) Wait(){
    group.wait.Wait()
    group.cancel()
}
