//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"raycaster/internal/raycast"
)

// hitFloats is the number of floats the kernel writes per column.
const hitFloats = 8

const castKernelSource = `__kernel void cast_columns(
    const int width,
    const int grid_w,
    const int grid_h,
    const float pos_x,
    const float pos_y,
    const float dir_x,
    const float dir_y,
    const float plane_x,
    const float plane_y,
    __global const int* cells,
    __global float* out)
{
    int x = get_global_id(0);
    if (x >= width) {
        return;
    }
    float camera_x = 2.0f * (float)x / (float)width - 1.0f;
    float ray_x = dir_x + plane_x * camera_x;
    float ray_y = dir_y + plane_y * camera_x;

    int map_x = (int)floor(pos_x);
    int map_y = (int)floor(pos_y);
    float delta_x = ray_x == 0.0f ? INFINITY : fabs(1.0f / ray_x);
    float delta_y = ray_y == 0.0f ? INFINITY : fabs(1.0f / ray_y);

    int step_x = 1;
    float side_x = ((float)map_x + 1.0f - pos_x) * delta_x;
    if (ray_x < 0.0f) {
        step_x = -1;
        side_x = (pos_x - (float)map_x) * delta_x;
    }
    int step_y = 1;
    float side_y = ((float)map_y + 1.0f - pos_y) * delta_y;
    if (ray_y < 0.0f) {
        step_y = -1;
        side_y = (pos_y - (float)map_y) * delta_y;
    }

    int side = 0;
    int code = 0;
    int limit = grid_w + grid_h;
    for (int i = 0; i < limit && code == 0; i++) {
        if (side_x < side_y) {
            side_x += delta_x;
            map_x += step_x;
            side = 0;
        } else {
            side_y += delta_y;
            map_y += step_y;
            side = 1;
        }
        if (map_x < 0 || map_y < 0 || map_x >= grid_w || map_y >= grid_h) {
            code = -1;
        } else {
            code = cells[map_y * grid_w + map_x];
        }
    }

    float dist = side == 0 ? side_x - delta_x : side_y - delta_y;
    float wall = side == 0 ? pos_y + dist * ray_y : pos_x + dist * ray_x;
    wall -= floor(wall);

    __global float* o = out + x * 8;
    o[0] = dist;
    o[1] = (float)side;
    o[2] = code > 0 ? (float)(code - 1) : -1.0f;
    o[3] = wall;
    o[4] = (float)map_x;
    o[5] = (float)map_y;
    o[6] = ray_x;
    o[7] = ray_y;
}`

// openCLCaster runs the per-column DDA on an OpenCL device. The grid is
// uploaded once; each frame writes only the camera arguments.
type openCLCaster struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	cellsBuf   *cl.MemObject
	outBuf     *cl.MemObject
	width      int
	gridW      int
	gridH      int
	out        []float32
	deviceName string
}

func newOpenCLCaster(grid *raycast.Grid) (*openCLCaster, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	c := &openCLCaster{
		gridW:      grid.Width(),
		gridH:      grid.Height(),
		deviceName: device.Name(),
	}
	if err := c.init(device, grid); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (c *openCLCaster) init(device *cl.Device, grid *raycast.Grid) error {
	var err error
	if c.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if c.queue, err = c.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if c.program, err = c.context.CreateProgramWithSource([]string{castKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := c.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if c.kernel, err = c.program.CreateKernel("cast_columns"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	codes := grid.Cells()
	cells := make([]int32, len(codes))
	for i, code := range codes {
		cells[i] = int32(code)
	}
	byteLen := len(cells) * int(unsafe.Sizeof(int32(0)))
	if c.cellsBuf, err = c.context.CreateEmptyBuffer(cl.MemReadOnly, byteLen); err != nil {
		return fmt.Errorf("allocating cell buffer: %w", err)
	}
	if _, err := c.queue.EnqueueWriteBuffer(c.cellsBuf, true, 0, byteLen, unsafe.Pointer(&cells[0]), nil); err != nil {
		return fmt.Errorf("uploading grid cells: %w", err)
	}
	return nil
}

// ensureOutput sizes the hit buffer for width columns.
func (c *openCLCaster) ensureOutput(width int) error {
	if c.outBuf != nil && c.width == width {
		return nil
	}
	if c.outBuf != nil {
		c.outBuf.Release()
		c.outBuf = nil
	}
	n := width * hitFloats
	buf, err := c.context.CreateEmptyBuffer(cl.MemWriteOnly, n*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		return fmt.Errorf("allocating hit buffer: %w", err)
	}
	c.outBuf = buf
	c.width = width
	c.out = make([]float32, n)
	return nil
}

// CastColumns implements raycast.ColumnCaster.
func (c *openCLCaster) CastColumns(cam *raycast.Camera, hits []raycast.Hit) error {
	width := len(hits)
	if width == 0 {
		return nil
	}
	if err := c.ensureOutput(width); err != nil {
		return err
	}
	if err := c.kernel.SetArgs(
		int32(width),
		int32(c.gridW),
		int32(c.gridH),
		float32(cam.Pos.X),
		float32(cam.Pos.Y),
		float32(cam.Dir.X),
		float32(cam.Dir.Y),
		float32(cam.Plane.X),
		float32(cam.Plane.Y),
		c.cellsBuf,
		c.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := c.queue.EnqueueNDRangeKernel(c.kernel, nil, []int{width}, nil, nil); err != nil {
		return fmt.Errorf("enqueue cast kernel: %w", err)
	}
	if _, err := c.queue.EnqueueReadBufferFloat32(c.outBuf, true, 0, c.out, nil); err != nil {
		return fmt.Errorf("reading hits: %w", err)
	}
	for x := range hits {
		o := c.out[x*hitFloats : (x+1)*hitFloats]
		hits[x] = raycast.Hit{
			Distance: float64(o[0]),
			Side:     raycast.Side(o[1]),
			Material: int(o[2]),
			WallX:    float64(o[3]),
			CellX:    int(o[4]),
			CellY:    int(o[5]),
			RayDir:   raycast.Vec2{X: float64(o[6]), Y: float64(o[7])},
		}
	}
	return nil
}

// Close releases every OpenCL object the caster holds.
func (c *openCLCaster) Close() {
	if c.outBuf != nil {
		c.outBuf.Release()
		c.outBuf = nil
	}
	if c.cellsBuf != nil {
		c.cellsBuf.Release()
		c.cellsBuf = nil
	}
	if c.kernel != nil {
		c.kernel.Release()
		c.kernel = nil
	}
	if c.program != nil {
		c.program.Release()
		c.program = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.context != nil {
		c.context.Release()
		c.context = nil
	}
}

// DeviceName reports the OpenCL device in use.
func (c *openCLCaster) DeviceName() string { return c.deviceName }
